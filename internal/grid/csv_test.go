package grid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Title:    "Folio Balance Report",
		Subtitle: "Property BER01, 2026-03-01 to 2026-03-31",
		Header:   []string{"Reservation / Folio", "Arrival", "Departure", "Status", "Receivables", "Liabilities"},
		Rows: [][]Cell{
			{{Value: "R1", URL: "https://backoffice.test/r/R1"}, {Value: "2026-03-01"}, {Value: "2026-03-05"}, {Value: "CheckedOut"}, {Value: "100.00"}, {Value: "50.00"}},
			{{Value: "EXT1", URL: "https://backoffice.test/f/EXT1"}, {Value: ""}, {Value: ""}, {Value: ""}, {Value: "0.00"}, {Value: "20.00"}},
		},
		Totals:  []Cell{{}, {}, {}, {Value: "Total"}, {Value: "100.00"}, {Value: "70.00"}},
		Summary: "3 Transactions processed. Number of records with the open balance: total - 2, reservations - 1, external folios - 1",
	}
}

func TestCSVSheetRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVSheet(&buf).Render(sampleDocument()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	require.Equal(t, []string{
		"# Folio Balance Report",
		"# Property BER01, 2026-03-01 to 2026-03-31",
		"Reservation / Folio,Arrival,Departure,Status,Receivables,Liabilities",
		"R1,2026-03-01,2026-03-05,CheckedOut,100.00,50.00",
		"EXT1,,,,0.00,20.00",
		",,,Total,100.00,70.00",
		"# 3 Transactions processed. Number of records with the open balance: total - 2, reservations - 1, external folios - 1",
	}, lines)
}

func TestCSVSheetOmitsEmptyTitle(t *testing.T) {
	doc := sampleDocument()
	doc.Title = ""
	doc.Subtitle = ""
	doc.Summary = ""

	var buf bytes.Buffer
	require.NoError(t, NewCSVSheet(&buf).Render(doc))
	require.True(t, strings.HasPrefix(buf.String(), "Reservation / Folio,"))
}
