package wallet

import (
	"log"
	"time"
)

// PriceSource values one asset at one instant, in the reporting currency.
// Implementations never fail outward: an unpriceable (asset, instant)
// yields an unknown Price.
type PriceSource interface {
	PriceAt(asset string, at time.Time) Price
}

// TaxableEvent is a disposal of crypto into legal-tender currency, the only
// kind of event that realizes value under the modeled rule.
type TaxableEvent struct {
	Time   time.Time
	Asset  string // the legal-tender currency received
	Label  string // raw operation label
	Amount Money  // positive fiat proceeds
}

// Result is the immutable outcome of one ledger reconstruction run.
type Result struct {
	Holdings      Holdings
	NetInvested   Money
	Snapshots     []Snapshot
	TaxableEvents []TaxableEvent
}

// Engine replays a ledger chronologically, rebuilding holdings and the net
// fiat invested, and classifying taxable events.
//
// The replay loop is strictly single-threaded: each group depends on the
// cumulative state left by earlier ones. Concurrency lives only in the price
// layer the engine calls into.
type Engine struct {
	prices   PriceSource
	currency string

	// Progress, when set, is called after each processed group with the
	// number of groups done and the total.
	Progress func(done, total int)
}

// NewEngine creates an engine reporting in the given currency.
// The price source is only consulted for card buys whose fiat leg is not in
// the ledger; it may be nil when the ledger is known to contain none.
func NewEngine(prices PriceSource, currency string) *Engine {
	return &Engine{prices: prices, currency: currency}
}

// Process replays the whole ledger and returns the reconstructed state.
//
// Per group, every row's signed change is applied to holdings first, then
// fiat rows adjust the net invested:
//   - deposit adds the (positive) amount,
//   - withdraw_fiat adds the (negative) amount,
//   - sell_fiat subtracts the (positive) proceeds and records a taxable event.
//
// A buy_fiat row on a crypto asset in a group with no internal fiat deduction
// is a card buy: its fiat cost is not a ledger row, so the engine values the
// purchase at the market price of that minute and adds it to the net invested.
func (e *Engine) Process(l *Ledger) *Result {
	r := &Result{
		Holdings:    make(Holdings),
		NetInvested: M(0, e.currency),
	}

	total := l.GroupCount()
	done := 0
	for g := range l.Groups() {
		e.processGroup(g, r)
		r.Snapshots = append(r.Snapshots, Snapshot{
			Time:        g.Time,
			Holdings:    r.Holdings.Copy(),
			NetInvested: r.NetInvested,
		})
		done++
		if e.Progress != nil {
			e.Progress(done, total)
		}
	}
	return r
}

func (e *Engine) processGroup(g Group, r *Result) {
	hasFiatDeduction := g.HasFiatDeduction()

	for _, tx := range g.Rows {
		r.Holdings.Apply(tx.Asset, tx.Change)

		// Only legal-tender rows move the fiat basis. Stablecoin and
		// crypto-to-crypto rows never do, whatever their label.
		if IsFiat(tx.Asset) {
			amount := M(tx.Change.value, e.currency)
			switch tx.Op {
			case OpDeposit:
				r.NetInvested = r.NetInvested.Add(amount)
			case OpWithdrawFiat:
				// change is negative for withdrawals
				r.NetInvested = r.NetInvested.Add(amount)
			case OpSellFiat:
				// Taxable disposal: crypto realized into legal tender.
				// The proceeds leave the cost basis (cash out).
				r.NetInvested = r.NetInvested.Sub(amount)
				r.TaxableEvents = append(r.TaxableEvents, TaxableEvent{
					Time:   tx.Time,
					Asset:  tx.Asset,
					Label:  tx.Label,
					Amount: amount,
				})
			}
		}

		// A card buy: crypto bought with fiat, but the fiat leg is external
		// to the ledger. The engine must value it independently.
		if tx.Op == OpBuyFiat && !IsFiat(tx.Asset) && !hasFiatDeduction {
			price := UnknownPrice
			if e.prices != nil {
				price = e.prices.PriceAt(tx.Asset, tx.Time)
			}
			if !price.IsKnown() {
				log.Printf("card buy of %s %s at %s: no price available, basis understated",
					tx.Change, tx.Asset, tx.Time.Format(time.RFC3339))
			}
			r.NetInvested = r.NetInvested.Add(price.Mul(tx.Change, e.currency))
		}
	}
}
