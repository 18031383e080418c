package wallet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mroul/wallet/date"
)

// FiscalLine is one fiat movement listed in the fiscal report.
type FiscalLine struct {
	Time   time.Time
	Label  string
	Asset  string
	Amount Money // always positive
}

// YearReport summarizes the fiat flows of one calendar year: deposits,
// withdrawals, and the taxable disposal volume with its supporting lines.
type YearReport struct {
	Year            int
	Deposits        Money
	Withdrawals     Money
	TaxableVolume   Money
	DepositLines    []FiscalLine
	WithdrawalLines []FiscalLine
	TaxableLines    []FiscalLine
}

// NewFiscalReport aggregates the ledger's fiat flows per calendar year.
//
// Only legal-tender rows count. The taxable volume of a year is exactly the
// sum of its sell-to-fiat proceeds; conversions into stablecoins or other
// crypto assets never appear here.
func NewFiscalReport(l *Ledger, currency string) []YearReport {
	byYear := make(map[int]*YearReport)
	yearOf := func(y int) *YearReport {
		r, ok := byYear[y]
		if !ok {
			r = &YearReport{
				Year:          y,
				Deposits:      M(0, currency),
				Withdrawals:   M(0, currency),
				TaxableVolume: M(0, currency),
			}
			byYear[y] = r
		}
		return r
	}

	for tx := range l.Transactions() {
		if !IsFiat(tx.Asset) {
			continue
		}
		r := yearOf(tx.Time.Year())
		line := FiscalLine{Time: tx.Time, Label: tx.Label, Asset: tx.Asset, Amount: M(tx.Change.Abs().value, currency)}
		switch {
		case tx.Op == OpDeposit && tx.Change.IsPositive():
			r.Deposits = r.Deposits.Add(line.Amount)
			r.DepositLines = append(r.DepositLines, line)
		case (tx.Op == OpWithdraw || tx.Op == OpWithdrawFiat) && tx.Change.IsNegative():
			r.Withdrawals = r.Withdrawals.Add(line.Amount)
			r.WithdrawalLines = append(r.WithdrawalLines, line)
		case tx.Op == OpSellFiat && tx.Change.IsPositive():
			r.TaxableVolume = r.TaxableVolume.Add(line.Amount)
			r.TaxableLines = append(r.TaxableLines, line)
		}
	}

	reports := make([]YearReport, 0, len(byYear))
	for _, y := range l.Years() {
		if r, ok := byYear[y]; ok {
			reports = append(reports, *r)
		}
	}
	return reports
}

// dust is the threshold below which a position is not worth pricing.
var dust = decimal.RequireFromString("0.000001")

// DayValue is one point of the daily valuation series.
type DayValue struct {
	Date        date.Date
	Value       Money    // market value of open positions
	NetInvested Money    // net fiat invested as of that day
	Unpriced    []string // assets held that day with no available price
}

// ValuationSeries resamples the per-group snapshots to one state per day
// (forward-filling gaps) and values each day's open positions with a batch
// price fetch at that day's minute.
//
// Assets whose price is unavailable are listed in Unpriced and contribute
// zero to Value; callers must treat them as "valuation unavailable", not as
// worthless.
func ValuationSeries(snapshots []Snapshot, src PriceSource, currency string) []DayValue {
	if len(snapshots) == 0 {
		return nil
	}

	// last snapshot of each day wins
	lastOfDay := make(map[date.Date]Snapshot)
	for _, s := range snapshots {
		lastOfDay[date.Of(s.Time)] = s
	}

	from := date.Of(snapshots[0].Time)
	to := date.Of(snapshots[len(snapshots)-1].Time)

	var series []DayValue
	current := snapshots[0]
	for d := range date.Days(from, to) {
		if s, ok := lastOfDay[d]; ok {
			current = s
		}

		var active []string
		for asset, q := range current.Holdings {
			if q.value.GreaterThan(dust) {
				active = append(active, asset)
			}
		}

		dv := DayValue{Date: d, Value: M(0, currency), NetInvested: current.NetInvested}
		if len(active) > 0 {
			prices := BatchPrices(src, active, d.Time())
			for _, asset := range active {
				p := prices[asset]
				if !p.IsKnown() {
					dv.Unpriced = append(dv.Unpriced, asset)
					continue
				}
				dv.Value = dv.Value.Add(p.Mul(current.Holdings[asset], currency))
			}
		}
		series = append(series, dv)
	}
	return series
}
