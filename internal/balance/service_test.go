package balance

import (
	"context"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/foliodesk/foliodesk/internal/pms"
)

type mockSource struct {
	txns  []pms.Transaction
	err   error
	calls int
}

func (m *mockSource) SearchTransactions(ctx context.Context, propertyID string, from, to time.Time) ([]pms.Transaction, error) {
	m.calls++
	return m.txns, m.err
}

func newTestService(t *testing.T, source Source) (*Service, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Minute)
	return NewService(source, stubLinks{}, cache, slog.Default()), cache
}

func testFilter() ReportFilter {
	return ReportFilter{
		PropertyID: "BER01",
		From:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Detailed:   true,
	}
}

func TestBuildReportCaches(t *testing.T) {
	source := &mockSource{txns: []pms.Transaction{
		guestReceivable(t, resR1(), "100.00"),
	}}
	svc, _ := newTestService(t, source)

	first, err := svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)
	second, err := svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)

	require.Equal(t, 1, source.calls, "second build must come from cache")
	require.Equal(t, first, second)
}

func TestBuildReportCacheKeySplitsByView(t *testing.T) {
	source := &mockSource{txns: []pms.Transaction{
		guestReceivable(t, resR1(), "100.00"),
		guestLiability(t, resR1(), "50.00", tax(t, "A", "10")),
	}}
	svc, _ := newTestService(t, source)

	detailed, err := svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)

	simple := testFilter()
	simple.Detailed = false
	simplified, err := svc.BuildReport(context.Background(), simple)
	require.NoError(t, err)

	require.Equal(t, 2, source.calls)
	require.Len(t, detailed.Header, 7)
	require.Len(t, simplified.Header, 6)
}

func TestBuildReportBumpInvalidates(t *testing.T) {
	source := &mockSource{txns: []pms.Transaction{
		guestReceivable(t, resR1(), "100.00"),
	}}
	svc, cache := newTestService(t, source)

	_, err := svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)
	require.NoError(t, cache.Bump(context.Background()))
	_, err = svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)

	require.Equal(t, 2, source.calls)
}

func TestBuildReportWithoutCache(t *testing.T) {
	source := &mockSource{txns: []pms.Transaction{
		guestReceivable(t, resR1(), "100.00"),
	}}
	svc := NewService(source, stubLinks{}, nil, slog.Default())

	_, err := svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)
	_, err = svc.BuildReport(context.Background(), testFilter())
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}

func TestBuildReportPropagatesSourceError(t *testing.T) {
	source := &mockSource{err: context.DeadlineExceeded}
	svc := NewService(source, stubLinks{}, nil, slog.Default())

	_, err := svc.BuildReport(context.Background(), testFilter())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
