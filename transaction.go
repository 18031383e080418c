package wallet

import "time"

// Transaction is a single row of the exchange's transaction export,
// immutable once loaded.
//
// Change is a signed exact-decimal quantity: positive for inflows into the
// wallet, negative for outflows.
type Transaction struct {
	Time   time.Time // UTC, minute-or-finer resolution
	Asset  string    // asset symbol, e.g. "BTC", "EUR"
	Change Quantity
	Label  string    // raw operation label as exported
	Op     Operation // normalized operation
}

// NewTransaction builds a transaction from a raw export row,
// normalizing the timestamp to UTC and the label to an Operation.
func NewTransaction(when time.Time, label, asset string, change Quantity) Transaction {
	return Transaction{
		Time:   when.UTC(),
		Asset:  asset,
		Change: change,
		Label:  label,
		Op:     NormalizeOperation(label),
	}
}

// Equal reports whether two transactions are the same row.
func (t Transaction) Equal(o Transaction) bool {
	return t.Time.Equal(o.Time) && t.Asset == o.Asset && t.Label == o.Label && t.Change.Equal(o.Change)
}

// Group is the atomic processing unit of the ledger engine: all transactions
// sharing one exact timestamp. Within a group, row order does not affect the
// final holdings or net-invested totals.
type Group struct {
	Time time.Time
	Rows []Transaction
}

// HasFiatDeduction reports whether any row removes legal-tender currency.
// A buy funded by fiat inside the same group carries such a deduction; a card
// buy does not, its fiat leg lives outside the ledger.
func (g Group) HasFiatDeduction() bool {
	for _, r := range g.Rows {
		if IsFiat(r.Asset) && r.Change.IsNegative() {
			return true
		}
	}
	return false
}
