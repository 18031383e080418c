// Package renderer turns the wallet package's plain result structures into
// markdown documents and chart images. It never mutates its inputs.
package renderer

import (
	"fmt"
	"strings"

	"github.com/mroul/wallet"
)

const timeFormat = "2006-01-02 15:04"

// FiscalReportMarkdown renders the per-year fiscal summaries to markdown.
func FiscalReportMarkdown(reports []wallet.YearReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Fiscal Report\n\n")
	if len(reports) == 0 {
		fmt.Fprintln(&b, "No fiat activity found in the ledger.")
		return b.String()
	}

	for _, r := range reports {
		fmt.Fprintf(&b, "## %d\n\n", r.Year)
		fmt.Fprintln(&b, "| | Amount |")
		fmt.Fprintln(&b, "|:---|---:|")
		fmt.Fprintf(&b, "| Fiat deposits | %s |\n", r.Deposits)
		fmt.Fprintf(&b, "| Fiat withdrawals | %s |\n", r.Withdrawals)
		fmt.Fprintf(&b, "| Taxable disposal volume | %s |\n\n", r.TaxableVolume)

		if len(r.TaxableLines) == 0 {
			fmt.Fprintf(&b, "No disposal into legal tender in %d: the taxable volume is zero.\n\n", r.Year)
			continue
		}

		fmt.Fprintf(&b, "### Taxable disposals (%d)\n\n", len(r.TaxableLines))
		fmt.Fprintln(&b, "Conversions into stablecoins or other crypto assets are deferred and not listed here.")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "| Date | Operation | Currency | Proceeds |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|")
		for _, line := range r.TaxableLines {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				line.Time.Format(timeFormat), line.Label, line.Asset, line.Amount)
		}
		fmt.Fprintln(&b, "")
	}
	return b.String()
}

// HoldingsMarkdown renders the final wallet state to markdown.
// Prices may be nil when the holdings were not valued.
func HoldingsMarkdown(h wallet.Holdings, netInvested wallet.Money, prices map[string]wallet.Price, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	fmt.Fprintln(&b, "| Asset | Quantity | Price | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")

	total := wallet.M(0, currency)
	unpriced := 0
	for _, asset := range h.Assets() {
		q := h[asset]
		p, ok := prices[asset]
		if !ok || !p.IsKnown() {
			unpriced++
			fmt.Fprintf(&b, "| %s | %s | n/a | n/a |\n", asset, q)
			continue
		}
		value := p.Mul(q, currency)
		total = total.Add(value)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", asset, q, p, value)
	}
	fmt.Fprintln(&b, "")
	fmt.Fprintf(&b, "Total value: %s (priced positions only)\n\n", total)
	fmt.Fprintf(&b, "Net invested: %s\n", netInvested.SignedString())
	if unpriced > 0 {
		fmt.Fprintf(&b, "\n%d position(s) could not be priced; their value is unavailable, not zero.\n", unpriced)
	}
	return b.String()
}

// TaxableEventsMarkdown renders the engine's taxable-event feed to markdown.
func TaxableEventsMarkdown(events []wallet.TaxableEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Taxable Events\n\n")
	if len(events) == 0 {
		fmt.Fprintln(&b, "No taxable event: no disposal into legal tender.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Operation | Currency | Proceeds |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|")
	for _, ev := range events {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			ev.Time.Format(timeFormat), ev.Label, ev.Asset, ev.Amount)
	}
	return b.String()
}
