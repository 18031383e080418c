package wallet

import (
	"iter"
	"sort"
	"time"
)

// Ledger is the chronological record of all wallet transactions.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append adds transactions to the ledger, keeping it chronologically sorted.
// The sort is stable so rows sharing a timestamp keep their input order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Time.Before(l.transactions[j].Time)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions iterates all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Groups iterates the ledger as timestamp groups, strictly in chronological
// order. All rows sharing one exact timestamp form a single group.
func (l *Ledger) Groups() iter.Seq[Group] {
	return func(yield func(Group) bool) {
		for i := 0; i < len(l.transactions); {
			j := i
			for j < len(l.transactions) && l.transactions[j].Time.Equal(l.transactions[i].Time) {
				j++
			}
			g := Group{Time: l.transactions[i].Time, Rows: l.transactions[i:j]}
			if !yield(g) {
				return
			}
			i = j
		}
	}
}

// GroupCount returns the number of timestamp groups in the ledger.
func (l *Ledger) GroupCount() int {
	n := 0
	for range l.Groups() {
		n++
	}
	return n
}

// Years returns the sorted list of calendar years covered by the ledger.
func (l *Ledger) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, tx := range l.transactions {
		y := tx.Time.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// Range returns the first and last transaction timestamps.
// Both are zero when the ledger is empty.
func (l *Ledger) Range() (from, to time.Time) {
	if len(l.transactions) == 0 {
		return
	}
	return l.transactions[0].Time, l.transactions[len(l.transactions)-1].Time
}
