package balance

import (
	"errors"
	"fmt"

	"github.com/foliodesk/foliodesk/internal/pms"
)

// ErrUnsupportedReference reports a transaction whose reference type is
// neither guest nor external at record-construction time. The upstream
// filter keeps this unreachable; hitting it means a programming error.
var ErrUnsupportedReference = errors.New("balance: unsupported reference type")

// GroupTransactions partitions the batch into one record per reservation or
// per external folio reference. Transactions with other reference types are
// dropped. Records and the transactions inside them keep first-seen order.
func GroupTransactions(txns []pms.Transaction) ([]*Record, error) {
	records := make(map[string]*Record)
	keys := make([]string, 0)
	for _, tx := range supported(txns) {
		key, err := groupKey(tx)
		if err != nil {
			return nil, err
		}
		rec, ok := records[key]
		if !ok {
			rec, err = newRecord(tx)
			if err != nil {
				return nil, err
			}
			records[key] = rec
			keys = append(keys, key)
		}
		rec.Transactions = append(rec.Transactions, tx)
	}

	out := make([]*Record, 0, len(keys))
	for _, key := range keys {
		out = append(out, records[key])
	}
	return out, nil
}

func supported(txns []pms.Transaction) []pms.Transaction {
	kept := make([]pms.Transaction, 0, len(txns))
	for _, tx := range txns {
		if tx.ReferenceType == pms.RefGuest || tx.ReferenceType == pms.RefExternal {
			kept = append(kept, tx)
		}
	}
	return kept
}

func groupKey(tx pms.Transaction) (string, error) {
	switch tx.ReferenceType {
	case pms.RefGuest:
		return tx.Reservation.ID, nil
	case pms.RefExternal:
		return tx.ExternalRef, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedReference, tx.ReferenceType)
	}
}

// newRecord fixes the record's static fields from the first transaction
// seen for its grouping key.
func newRecord(tx pms.Transaction) (*Record, error) {
	switch tx.ReferenceType {
	case pms.RefGuest:
		return &Record{
			Kind:      KindGuest,
			ID:        tx.Reservation.ID,
			Arrival:   calendarDate(tx.Reservation.Arrival),
			Departure: calendarDate(tx.Reservation.Departure),
			Status:    tx.Reservation.Status,
		}, nil
	case pms.RefExternal:
		return &Record{
			Kind: KindExternal,
			ID:   tx.ExternalRef,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedReference, tx.ReferenceType)
	}
}

// calendarDate truncates an ISO timestamp to calendar-date precision.
func calendarDate(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
