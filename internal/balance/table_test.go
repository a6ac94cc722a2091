package balance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliodesk/foliodesk/internal/pms"
)

type stubLinks struct{}

func (stubLinks) ReservationFolioURL(propertyID, reservationID string) string {
	return "https://backoffice.test/" + propertyID + "/reservations/" + reservationID
}

func (stubLinks) GeneralFolioURL(propertyID, folioRef string) string {
	return "https://backoffice.test/" + propertyID + "/folios/" + folioRef
}

func sampleResult(t *testing.T) Result {
	t.Helper()
	result, err := Aggregate([]pms.Transaction{
		guestReceivable(t, resR1(), "100.00"),
		guestLiability(t, resR1(), "50.00", tax(t, "A", "10")),
		externalLiability(t, "EXT1", "20.00", tax(t, "B", "19")),
	})
	require.NoError(t, err)
	return result
}

func TestBuildTableHeaderWidth(t *testing.T) {
	result := sampleResult(t)
	doc := BuildTable(result, stubLinks{}, TableOptions{PropertyID: "BER01", VATBreakdown: true})

	require.Len(t, doc.Header, 6+len(result.Columns))
	for _, row := range doc.Rows {
		require.Len(t, row, len(doc.Header))
	}
	require.Len(t, doc.Totals, len(doc.Header))
}

func TestBuildTableSimplifiedView(t *testing.T) {
	result := sampleResult(t)
	doc := BuildTable(result, stubLinks{}, TableOptions{PropertyID: "BER01"})

	require.Equal(t, []string{
		"Reservation / Folio", "Arrival", "Departure", "Status", "Receivables", "Liabilities",
	}, doc.Header)
	require.Len(t, doc.Rows, 2)
	for _, row := range doc.Rows {
		require.Len(t, row, 6)
	}
	// Same rows and totals, just without the VAT breakdown columns.
	require.Equal(t, "70.00", doc.Totals[5].Value)
}

func TestBuildTableTotalsRowShape(t *testing.T) {
	doc := BuildTable(sampleResult(t), stubLinks{}, TableOptions{PropertyID: "BER01", VATBreakdown: true})

	require.Equal(t, "", doc.Totals[0].Value)
	require.Equal(t, "", doc.Totals[0].URL)
	require.Equal(t, "Total", doc.Totals[3].Value)
}

func TestBuildTableWithoutLinkBuilder(t *testing.T) {
	doc := BuildTable(sampleResult(t), nil, TableOptions{PropertyID: "BER01", VATBreakdown: true})
	require.Equal(t, "R1", doc.Rows[0][0].Value)
	require.Empty(t, doc.Rows[0][0].URL)
}

func TestBuildTableTitleAndSubtitle(t *testing.T) {
	doc := BuildTable(sampleResult(t), stubLinks{}, TableOptions{
		PropertyID:   "BER01",
		Title:        "Folio Balance Report",
		Subtitle:     "Property BER01, 2026-03-01 to 2026-03-31",
		VATBreakdown: true,
	})
	require.Equal(t, "Folio Balance Report", doc.Title)
	require.Equal(t, "Property BER01, 2026-03-01 to 2026-03-31", doc.Subtitle)
}
