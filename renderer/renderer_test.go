package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/mroul/wallet"
	"github.com/mroul/wallet/date"
)

// headings parses a markdown document and returns its heading texts, using
// the same parser that terminal rendering relies on.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	var hs []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			hs = append(hs, string(h.Text(source)))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown AST: %v", err)
	}
	return hs
}

func TestFiscalReportMarkdown(t *testing.T) {
	reports := []wallet.YearReport{{
		Year:          2024,
		Deposits:      wallet.M(1500, "EUR"),
		Withdrawals:   wallet.M(200, "EUR"),
		TaxableVolume: wallet.M(2500, "EUR"),
		TaxableLines: []wallet.FiscalLine{{
			Time:   time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC),
			Label:  "Sell Crypto For Fiat",
			Asset:  "EUR",
			Amount: wallet.M(2500, "EUR"),
		}},
	}}

	md := FiscalReportMarkdown(reports)

	hs := headings(t, md)
	want := []string{"Fiscal Report", "2024", "Taxable disposals (1)"}
	if len(hs) != len(want) {
		t.Fatalf("headings = %v, want %v", hs, want)
	}
	for i := range want {
		if hs[i] != want[i] {
			t.Errorf("headings[%d] = %q, want %q", i, hs[i], want[i])
		}
	}
	if !strings.Contains(md, "| Fiat deposits |") {
		t.Error("report is missing the deposits row")
	}
	if !strings.Contains(md, "Sell Crypto For Fiat") {
		t.Error("report is missing the taxable line")
	}
}

func TestFiscalReportMarkdown_noTaxableYear(t *testing.T) {
	reports := []wallet.YearReport{{
		Year:          2023,
		Deposits:      wallet.M(100, "EUR"),
		Withdrawals:   wallet.M(0, "EUR"),
		TaxableVolume: wallet.M(0, "EUR"),
	}}
	md := FiscalReportMarkdown(reports)
	if !strings.Contains(md, "taxable volume is zero") {
		t.Errorf("report does not state the zero taxable volume:\n%s", md)
	}
}

func TestHoldingsMarkdown_flagsUnpriced(t *testing.T) {
	h := wallet.Holdings{"BTC": wallet.Q(0.1), "OBSCURE": wallet.Q(10)}
	prices := map[string]wallet.Price{"BTC": wallet.PriceOf(50000)}

	md := HoldingsMarkdown(h, wallet.M(1000, "EUR"), prices, "EUR")

	if !strings.Contains(md, "| OBSCURE | 10 | n/a | n/a |") {
		t.Errorf("unpriced asset not rendered as n/a:\n%s", md)
	}
	if !strings.Contains(md, "could not be priced") {
		t.Error("missing the unpriced disclaimer")
	}
}

func TestTaxableEventsMarkdown_empty(t *testing.T) {
	md := TaxableEventsMarkdown(nil)
	if !strings.Contains(md, "No taxable event") {
		t.Errorf("empty feed not stated:\n%s", md)
	}
}

func TestPerformanceChart(t *testing.T) {
	var series []wallet.DayValue
	for i := 0; i < 5; i++ {
		series = append(series, wallet.DayValue{
			Date:        date.New(2024, time.March, 1+i),
			Value:       wallet.M(1000+i*100, "EUR"),
			NetInvested: wallet.M(1000, "EUR"),
		})
	}

	png, err := PerformanceChart(series, 2024, "EUR")
	if err != nil {
		t.Fatalf("PerformanceChart() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	// a year with no points cannot be charted
	if _, err := PerformanceChart(series, 2020, "EUR"); err == nil {
		t.Error("PerformanceChart() for an empty year: want error")
	}
}
