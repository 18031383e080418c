package wallet

import (
	"testing"
	"time"
)

func TestLedger_groupsByExactTimestamp(t *testing.T) {
	l := NewLedger()
	t1 := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	l.Append(
		NewTransaction(t2, "Binance Convert", "USDT", Q(100)),
		NewTransaction(t1, "Deposit", "EUR", Q(1000)),
		NewTransaction(t2, "Binance Convert", "BTC", Q(-0.002)),
	)

	var groups []Group
	for g := range l.Groups() {
		groups = append(groups, g)
	}
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if !groups[0].Time.Equal(t1) || len(groups[0].Rows) != 1 {
		t.Errorf("groups[0] = %v, want single row at %v", groups[0], t1)
	}
	if !groups[1].Time.Equal(t2) || len(groups[1].Rows) != 2 {
		t.Errorf("groups[1] = %v, want two rows at %v", groups[1], t2)
	}
	if got := l.GroupCount(); got != 2 {
		t.Errorf("GroupCount() = %d, want 2", got)
	}
}

func TestGroup_HasFiatDeduction(t *testing.T) {
	when := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	withFiat := Group{Time: when, Rows: []Transaction{
		NewTransaction(when, "Buy Crypto With Fiat", "BTC", Q(0.1)),
		NewTransaction(when, "Buy Crypto With Fiat", "EUR", Q(-500)),
	}}
	if !withFiat.HasFiatDeduction() {
		t.Error("HasFiatDeduction() = false for a group spending EUR")
	}

	cardBuy := Group{Time: when, Rows: []Transaction{
		NewTransaction(when, "Buy Crypto With Fiat", "BTC", Q(0.1)),
	}}
	if cardBuy.HasFiatDeduction() {
		t.Error("HasFiatDeduction() = true for a card buy")
	}

	// spending a stablecoin is not a fiat deduction
	stable := Group{Time: when, Rows: []Transaction{
		NewTransaction(when, "Binance Convert", "BTC", Q(0.1)),
		NewTransaction(when, "Binance Convert", "USDT", Q(-4000)),
	}}
	if stable.HasFiatDeduction() {
		t.Error("HasFiatDeduction() = true for a stablecoin spend")
	}
}

func TestLedger_YearsAndRange(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewTransaction(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "Deposit", "EUR", Q(1)),
		NewTransaction(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), "Deposit", "EUR", Q(1)),
		NewTransaction(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), "Deposit", "EUR", Q(1)),
	)
	years := l.Years()
	if len(years) != 2 || years[0] != 2023 || years[1] != 2024 {
		t.Errorf("Years() = %v, want [2023 2024]", years)
	}
	from, to := l.Range()
	if from.Year() != 2023 || to.Month() != time.July {
		t.Errorf("Range() = %v, %v", from, to)
	}
}
