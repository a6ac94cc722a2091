package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/foliodesk/foliodesk/internal/grid"
)

// LinkBuilder produces the hyperlink targets for identity cells. Keeping it
// behind an interface keeps the aggregation core free of display-string
// formats.
type LinkBuilder interface {
	ReservationFolioURL(propertyID, reservationID string) string
	GeneralFolioURL(propertyID, folioRef string) string
}

// baseHeader are the fixed leading columns; VAT columns follow.
var baseHeader = []string{"Reservation / Folio", "Arrival", "Departure", "Status", "Receivables", "Liabilities"}

// TableOptions parameterise table assembly.
type TableOptions struct {
	PropertyID string
	Title      string
	Subtitle   string
	// VATBreakdown selects the detailed layout with one column per used
	// VAT category. When false the older simplified layout is produced:
	// the same rows and totals, fixed six-column width.
	VATBreakdown bool
}

// BuildTable assembles the final row/column structure for rendering: a
// header sized to the visible columns, one row per surviving record in
// bucket order, a trailing totals row and the summary line.
func BuildTable(result Result, links LinkBuilder, opts TableOptions) grid.Document {
	columns := result.Columns
	if !opts.VATBreakdown {
		columns = nil
	}

	header := make([]string, 0, len(baseHeader)+len(columns))
	header = append(header, baseHeader...)
	for _, col := range columns {
		header = append(header, col.Label())
	}

	rows := make([][]grid.Cell, 0, len(result.Records))
	for _, rec := range result.Records {
		row := make([]grid.Cell, 0, len(header))
		row = append(row,
			grid.Cell{Value: rec.ID, URL: folioURL(links, opts.PropertyID, rec)},
			grid.Cell{Value: rec.Arrival},
			grid.Cell{Value: rec.Departure},
			grid.Cell{Value: rec.Status},
			amountCell(rec.Receivables),
			amountCell(rec.LiabilitiesTotal()),
		)
		for _, col := range columns {
			row = append(row, amountCell(rec.Liabilities[col.Key]))
		}
		rows = append(rows, row)
	}

	totals := make([]grid.Cell, 0, len(header))
	totals = append(totals,
		grid.Cell{}, grid.Cell{}, grid.Cell{},
		grid.Cell{Value: "Total"},
		amountCell(result.Totals.Receivables),
		amountCell(result.Totals.Liabilities[TotalKey]),
	)
	for _, col := range columns {
		totals = append(totals, amountCell(result.Totals.Liabilities[col.Key]))
	}

	return grid.Document{
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
		Header:   header,
		Rows:     rows,
		Totals:   totals,
		Summary:  summaryLine(result),
	}
}

func folioURL(links LinkBuilder, propertyID string, rec *Record) string {
	if links == nil {
		return ""
	}
	if rec.Kind == KindGuest {
		return links.ReservationFolioURL(propertyID, rec.ID)
	}
	return links.GeneralFolioURL(propertyID, rec.ID)
}

func amountCell(v decimal.Decimal) grid.Cell {
	return grid.Cell{Value: v.StringFixed(2)}
}

func summaryLine(result Result) string {
	return fmt.Sprintf(
		"%d Transactions processed. Number of records with the open balance: total - %d, reservations - %d, external folios - %d",
		result.Processed, len(result.Records), result.GuestCount, result.ExternalCount,
	)
}
