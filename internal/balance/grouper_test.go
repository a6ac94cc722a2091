package balance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliodesk/foliodesk/internal/pms"
)

func TestGroupTransactionsStableByKey(t *testing.T) {
	res := resR1()
	txns := []pms.Transaction{
		guestReceivable(t, res, "10.00"),
		externalLiability(t, "EXT1", "5.00"),
		guestLiability(t, res, "3.00"),
		externalLiability(t, "EXT2", "2.00"),
		externalLiability(t, "EXT1", "1.00"),
	}

	records, err := GroupTransactions(txns)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, "R1", records[0].ID)
	require.Len(t, records[0].Transactions, 2)
	require.Equal(t, "EXT1", records[1].ID)
	require.Len(t, records[1].Transactions, 2)
	require.Equal(t, "EXT2", records[2].ID)
	require.Len(t, records[2].Transactions, 1)
}

func TestGroupTransactionsDropsOtherReferenceTypes(t *testing.T) {
	txns := []pms.Transaction{
		{ReferenceType: "House", ExternalRef: "H1"},
		guestReceivable(t, resR1(), "10.00"),
		{ReferenceType: "Internal"},
	}

	records, err := GroupTransactions(txns)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, KindGuest, records[0].Kind)
}

func TestFirstTransactionFixesStaticFields(t *testing.T) {
	first := resR1()
	changed := first
	changed.Status = "Cancelled"
	changed.Arrival = "2026-03-02T09:00:00Z"

	records, err := GroupTransactions([]pms.Transaction{
		guestReceivable(t, first, "1.00"),
		guestReceivable(t, changed, "2.00"),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "CheckedOut", records[0].Status)
	require.Equal(t, "2026-03-01", records[0].Arrival)
}

func TestGuestDatesTruncateToCalendarDays(t *testing.T) {
	records, err := GroupTransactions([]pms.Transaction{
		guestReceivable(t, pms.Reservation{
			ID:        "R5",
			Arrival:   "2026-07-14T15:04:05+02:00",
			Departure: "2026-07-16",
			Status:    "InHouse",
		}, "9.99"),
	})
	require.NoError(t, err)
	require.Equal(t, "2026-07-14", records[0].Arrival)
	require.Equal(t, "2026-07-16", records[0].Departure)
}

func TestExternalRecordsHaveNoStayFields(t *testing.T) {
	records, err := GroupTransactions([]pms.Transaction{
		externalLiability(t, "EXT1", "5.00"),
	})
	require.NoError(t, err)
	rec := records[0]
	require.Equal(t, KindExternal, rec.Kind)
	require.Empty(t, rec.Arrival)
	require.Empty(t, rec.Departure)
	require.Empty(t, rec.Status)
}

func TestUnsupportedReferenceIsRejectedAtConstruction(t *testing.T) {
	_, err := newRecord(pms.Transaction{ReferenceType: "House"})
	require.ErrorIs(t, err, ErrUnsupportedReference)

	_, err = groupKey(pms.Transaction{ReferenceType: "House"})
	require.ErrorIs(t, err, ErrUnsupportedReference)
}
