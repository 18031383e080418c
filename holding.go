package wallet

import (
	"maps"
	"slices"
	"time"
)

// Holdings maps asset symbols to exact-decimal quantities.
//
// Invariant: no entry is ever exactly zero; an asset whose balance reaches
// zero is removed so the mapping stays sparse. Quantities are not forced
// non-negative: the venue's export may carry fee-driven or reconciliation
// artifacts and the ledger mirrors them.
type Holdings map[string]Quantity

// Apply adds a signed change to the asset's balance, removing the entry when
// the result is exactly zero.
func (h Holdings) Apply(asset string, change Quantity) {
	q := h[asset].Add(change)
	if q.IsZero() {
		delete(h, asset)
		return
	}
	h[asset] = q
}

// Copy returns an independent copy of the holdings.
func (h Holdings) Copy() Holdings {
	c := make(Holdings, len(h))
	maps.Copy(c, h)
	return c
}

// Assets returns the held asset symbols in alphabetical order.
func (h Holdings) Assets() []string {
	return slices.Sorted(maps.Keys(h))
}

// Snapshot is an immutable copy of the wallet state after one timestamp
// group has been processed. Downstream consumers resample snapshots to one
// per day, forward-filling gaps.
type Snapshot struct {
	Time        time.Time
	Holdings    Holdings // value copy, callers must not mutate
	NetInvested Money
}
