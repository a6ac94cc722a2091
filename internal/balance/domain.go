// Package balance aggregates back-office transactions into a per-folio
// summary of outstanding receivables and liabilities, broken down by VAT
// category.
package balance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/foliodesk/foliodesk/internal/pms"
)

// Record kinds.
const (
	KindGuest    = "Guest"
	KindExternal = "External"
)

// VATWithout is the category key under which untaxed liability amounts
// accumulate.
const VATWithout = "Without"

// TotalKey indexes the overall liabilities amount inside a record's
// liabilities map, next to the per-category keys.
const TotalKey = "total"

// Record is the aggregate for one reservation or one external folio.
// Transactions keep their first-seen order.
type Record struct {
	Kind         string
	ID           string
	Arrival      string
	Departure    string
	Status       string
	Transactions []pms.Transaction
	Receivables  decimal.Decimal
	Liabilities  map[string]decimal.Decimal
}

// LiabilitiesTotal returns the record's overall liabilities amount.
func (r *Record) LiabilitiesTotal() decimal.Decimal {
	if r == nil || r.Liabilities == nil {
		return decimal.Zero
	}
	return r.Liabilities[TotalKey]
}

// HasOpenBalance reports whether the record survives into the report.
func (r *Record) HasOpenBalance() bool {
	return !r.Receivables.IsZero() || !r.LiabilitiesTotal().IsZero()
}

// VATCategory is a tax rate discovered during aggregation: a unique key,
// display metadata and a sort weight. Untaxed amounts sort lowest.
type VATCategory struct {
	Key     string          `json:"key"`
	Type    string          `json:"type,omitempty"`
	Percent decimal.Decimal `json:"percent"`
	Untaxed bool            `json:"untaxed,omitempty"`
}

// Label renders the column heading for the category.
func (c VATCategory) Label() string {
	if c.Untaxed {
		return "Liab. " + c.Key
	}
	return fmt.Sprintf("Liab. %s %s%%", c.Type, c.Percent.String())
}

// Weight is the sort key for column ordering.
func (c VATCategory) Weight() decimal.Decimal {
	if c.Untaxed {
		return decimal.Zero
	}
	return c.Percent
}
