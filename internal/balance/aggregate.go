package balance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/foliodesk/foliodesk/internal/pms"
)

// Totals holds the grand totals across all surviving records.
type Totals struct {
	Receivables decimal.Decimal
	Liabilities map[string]decimal.Decimal
}

// Result is the outcome of one aggregation pass: surviving records in
// display order (guest bucket first, then external), the VAT categories
// discovered while aggregating, the visible column set, and the counters
// behind the summary line.
type Result struct {
	Records       []*Record
	Registry      []VATCategory
	Columns       []VATCategory
	Totals        Totals
	Processed     int
	GuestCount    int
	ExternalCount int
}

// Aggregate groups the batch and computes receivables and per-VAT-category
// liabilities for every record. It is a pure function of its input: the
// category registry is part of the return value, not shared state.
func Aggregate(txns []pms.Transaction) (Result, error) {
	grouped, err := GroupTransactions(txns)
	if err != nil {
		return Result{}, err
	}

	registry := newVATRegistry()
	for _, rec := range grouped {
		aggregateReceivables(rec)
		aggregateLiabilities(rec, registry)
	}

	guests := make([]*Record, 0, len(grouped))
	externals := make([]*Record, 0)
	for _, rec := range grouped {
		if !rec.HasOpenBalance() {
			continue
		}
		if rec.Kind == KindGuest {
			guests = append(guests, rec)
		} else {
			externals = append(externals, rec)
		}
	}
	records := append(guests, externals...)

	result := Result{
		Records:       records,
		Registry:      registry.categories(),
		Totals:        sumTotals(records),
		Processed:     len(txns),
		GuestCount:    len(guests),
		ExternalCount: len(externals),
	}
	result.Columns = visibleColumns(registry, result.Totals.Liabilities)
	return result, nil
}

// aggregateReceivables sums gross amounts debited to the receivables
// account. The sum accumulates at full precision; rounding happens once,
// when the total is stored.
func aggregateReceivables(rec *Record) {
	sum := decimal.Zero
	for _, tx := range rec.Transactions {
		if tx.DebitedAccount.Type == pms.AccountReceivables {
			sum = sum.Add(tx.GrossAmount)
		}
	}
	rec.Receivables = sum.Round(2)
}

// aggregateLiabilities sums gross amounts credited to the liabilities
// account, keyed by VAT category, plus an overall total.
func aggregateLiabilities(rec *Record, registry *vatRegistry) {
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, tx := range rec.Transactions {
		if tx.CreditedAccount.Type != pms.AccountLiabilities {
			continue
		}
		key := registry.observe(tx)
		sums[key] = sums[key].Add(tx.GrossAmount)
		total = total.Add(tx.GrossAmount)
	}

	rec.Liabilities = make(map[string]decimal.Decimal, len(sums)+1)
	for key, amount := range sums {
		rec.Liabilities[key] = amount.Round(2)
	}
	rec.Liabilities[TotalKey] = total.Round(2)
}

// vatKey derives the category key for a transaction: type and percent of
// its leading tax entry, or the untaxed sentinel.
func vatKey(tx pms.Transaction) string {
	if len(tx.Taxes) > 0 && tx.Taxes[0].Type != pms.TaxTypeWithout {
		return tx.Taxes[0].Type + "-" + tx.Taxes[0].Percent.String()
	}
	return VATWithout
}

// vatRegistry records category display metadata in discovery order.
type vatRegistry struct {
	index map[string]int
	cats  []VATCategory
}

func newVATRegistry() *vatRegistry {
	return &vatRegistry{index: make(map[string]int)}
}

func (r *vatRegistry) observe(tx pms.Transaction) string {
	key := vatKey(tx)
	if _, ok := r.index[key]; ok {
		return key
	}
	cat := VATCategory{Key: key}
	if key == VATWithout {
		cat.Untaxed = true
	} else {
		cat.Type = tx.Taxes[0].Type
		cat.Percent = tx.Taxes[0].Percent
	}
	r.index[key] = len(r.cats)
	r.cats = append(r.cats, cat)
	return key
}

func (r *vatRegistry) categories() []VATCategory {
	out := make([]VATCategory, len(r.cats))
	copy(out, r.cats)
	return out
}

// sumTotals adds up the stored (already rounded) per-record amounts.
func sumTotals(records []*Record) Totals {
	totals := Totals{Liabilities: make(map[string]decimal.Decimal)}
	receivables := decimal.Zero
	liabilities := make(map[string]decimal.Decimal)
	for _, rec := range records {
		receivables = receivables.Add(rec.Receivables)
		for key, amount := range rec.Liabilities {
			liabilities[key] = liabilities[key].Add(amount)
		}
	}
	totals.Receivables = receivables.Round(2)
	for key, amount := range liabilities {
		totals.Liabilities[key] = amount.Round(2)
	}
	if _, ok := totals.Liabilities[TotalKey]; !ok {
		totals.Liabilities[TotalKey] = decimal.Zero.Round(2)
	}
	return totals
}

// visibleColumns filters the registry to categories with a non-zero total
// across surviving records, sorted by ascending tax percentage with ties in
// discovery order. Untaxed amounts count toward the overall liabilities
// total but never get a column of their own.
func visibleColumns(registry *vatRegistry, liabilityTotals map[string]decimal.Decimal) []VATCategory {
	visible := make([]VATCategory, 0, len(registry.cats))
	for _, cat := range registry.cats {
		if cat.Untaxed {
			continue
		}
		if !liabilityTotals[cat.Key].IsZero() {
			visible = append(visible, cat)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Weight().Cmp(visible[j].Weight()) < 0
	})
	return visible
}
