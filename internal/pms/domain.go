// Package pms integrates with the property-management back-office that owns
// reservations, folios and the transaction ledger.
package pms

import "github.com/shopspring/decimal"

// Reference types carried by back-office transactions. Only guest and
// external references describe folio balances; everything else (house
// accounts, internal transfers) is outside this report.
const (
	RefGuest    = "Guest"
	RefExternal = "External"
)

// Account types relevant to the balance report.
const (
	AccountReceivables = "Receivables"
	AccountLiabilities = "Liabilities"
)

// TaxTypeWithout marks an untaxed amount.
const TaxTypeWithout = "Without"

// Account identifies one side of a transaction posting.
type Account struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

// TaxEntry describes one tax applied to a transaction.
type TaxEntry struct {
	Type    string          `json:"type"`
	Percent decimal.Decimal `json:"percent"`
}

// Reservation is the stay a guest transaction belongs to. Arrival and
// departure are ISO timestamps as returned by the back-office.
type Reservation struct {
	ID        string `json:"id"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Status    string `json:"status"`
}

// Transaction is a single ledger posting. Gross amounts are tax inclusive.
type Transaction struct {
	ID              string          `json:"id"`
	ReferenceType   string          `json:"referenceType"`
	GrossAmount     decimal.Decimal `json:"grossAmount"`
	DebitedAccount  Account         `json:"debitedAccount"`
	CreditedAccount Account         `json:"creditedAccount"`
	Taxes           []TaxEntry      `json:"taxes,omitempty"`
	Reservation     Reservation     `json:"reservation,omitempty"`
	ExternalRef     string          `json:"externalReference,omitempty"`
}
