package wallet

import (
	"testing"
	"time"

	"github.com/mroul/wallet/date"
)

func TestNewFiscalReport(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewTransaction(time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC), "Deposit", "EUR", Q(1000)),
		NewTransaction(time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC), "Deposit", "EUR", Q(500)),
		NewTransaction(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC), "Fiat Withdraw", "EUR", Q(-200)),
		NewTransaction(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC), "Sell Crypto For Fiat", "EUR", Q(2500)),
		NewTransaction(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC), "Sell Crypto For Fiat", "BTC", Q(-0.05)),
		// stablecoin proceeds are not taxable whatever the label
		NewTransaction(time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC), "Binance Convert", "USDT", Q(4000)),
		// a different year goes to a different report
		NewTransaction(time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC), "Deposit", "EUR", Q(300)),
	)

	reports := NewFiscalReport(l, "EUR")
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}

	r24 := reports[0]
	if r24.Year != 2024 {
		t.Fatalf("reports[0].Year = %d, want 2024", r24.Year)
	}
	if got, want := r24.Deposits, M(1500, "EUR"); !got.Equal(want) {
		t.Errorf("Deposits = %s, want %s", got, want)
	}
	if got, want := r24.Withdrawals, M(200, "EUR"); !got.Equal(want) {
		t.Errorf("Withdrawals = %s, want %s", got, want)
	}
	if got, want := r24.TaxableVolume, M(2500, "EUR"); !got.Equal(want) {
		t.Errorf("TaxableVolume = %s, want %s", got, want)
	}
	if len(r24.TaxableLines) != 1 {
		t.Fatalf("len(TaxableLines) = %d, want 1", len(r24.TaxableLines))
	}
	// the lines always sum back to the aggregate
	sum := M(0, "EUR")
	for _, line := range r24.TaxableLines {
		sum = sum.Add(line.Amount)
	}
	if !sum.Equal(r24.TaxableVolume) {
		t.Errorf("sum of TaxableLines = %s, want %s", sum, r24.TaxableVolume)
	}

	r25 := reports[1]
	if r25.Year != 2025 {
		t.Fatalf("reports[1].Year = %d, want 2025", r25.Year)
	}
	if !r25.TaxableVolume.IsZero() {
		t.Errorf("2025 TaxableVolume = %s, want zero", r25.TaxableVolume)
	}
}

func TestValuationSeries_forwardFills(t *testing.T) {
	snapshots := []Snapshot{
		{
			Time:        time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
			Holdings:    Holdings{"BTC": Q(0.1)},
			NetInvested: M(1000, "EUR"),
		},
		// two days later; March 2 has no snapshot and must be forward-filled
		{
			Time:        time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC),
			Holdings:    Holdings{"BTC": Q(0.2)},
			NetInvested: M(2000, "EUR"),
		},
	}

	series := ValuationSeries(snapshots, fixedPrices{"BTC": 50000}, "EUR")

	if len(series) != 3 {
		t.Fatalf("len(series) = %d, want 3", len(series))
	}
	if got, want := series[0].Date, date.New(2025, time.March, 1); got != want {
		t.Errorf("series[0].Date = %s, want %s", got, want)
	}
	if got, want := series[0].Value, M(5000, "EUR"); !got.Equal(want) {
		t.Errorf("series[0].Value = %s, want %s", got, want)
	}
	// the gap day carries the previous day's state
	if got, want := series[1].Value, M(5000, "EUR"); !got.Equal(want) {
		t.Errorf("series[1].Value = %s, want %s", got, want)
	}
	if got, want := series[1].NetInvested, M(1000, "EUR"); !got.Equal(want) {
		t.Errorf("series[1].NetInvested = %s, want %s", got, want)
	}
	if got, want := series[2].Value, M(10000, "EUR"); !got.Equal(want) {
		t.Errorf("series[2].Value = %s, want %s", got, want)
	}
}

func TestValuationSeries_unpricedAssetIsFlagged(t *testing.T) {
	snapshots := []Snapshot{{
		Time:        time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		Holdings:    Holdings{"BTC": Q(0.1), "OBSCURE": Q(10)},
		NetInvested: M(1000, "EUR"),
	}}

	series := ValuationSeries(snapshots, fixedPrices{"BTC": 50000}, "EUR")

	if len(series) != 1 {
		t.Fatalf("len(series) = %d, want 1", len(series))
	}
	dv := series[0]
	// the unpriced asset contributes zero but is flagged as unavailable
	if got, want := dv.Value, M(5000, "EUR"); !got.Equal(want) {
		t.Errorf("Value = %s, want %s", got, want)
	}
	if len(dv.Unpriced) != 1 || dv.Unpriced[0] != "OBSCURE" {
		t.Errorf("Unpriced = %v, want [OBSCURE]", dv.Unpriced)
	}
}

func TestValuationSeries_skipsDust(t *testing.T) {
	snapshots := []Snapshot{{
		Time:        time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		Holdings:    Holdings{"BTC": ParseQuantityT(t, "0.0000001")},
		NetInvested: M(0, "EUR"),
	}}

	series := ValuationSeries(snapshots, fixedPrices{"BTC": 50000}, "EUR")
	if got := series[0].Value; !got.IsZero() {
		t.Errorf("Value = %s, want zero (dust position skipped)", got)
	}
	if len(series[0].Unpriced) != 0 {
		t.Errorf("Unpriced = %v, want empty (dust is not flagged)", series[0].Unpriced)
	}
}

// ParseQuantityT parses a quantity and fails the test on error.
func ParseQuantityT(t *testing.T, s string) Quantity {
	t.Helper()
	q, err := ParseQuantity(s)
	if err != nil {
		t.Fatalf("ParseQuantity(%q) error = %v", s, err)
	}
	return q
}
