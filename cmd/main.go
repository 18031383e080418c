// Package cmd implements the subcommands of the wax command-line tool.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/mroul/wallet"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&analyzeCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")
}

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file (JSONL format)")
var cacheFile = flag.String("cache-file", "price_cache.json", "Path to the durable price cache")
var reportingCurrency = flag.String("currency", "EUR", "Reporting currency for valuations and the fiscal report")
var apiBaseURL = flag.String("api-url", wallet.DefaultAPIBaseURL, "Market-data API base URL")

// DecodeLedger loads the ledger file.
func DecodeLedger() (*wallet.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return wallet.DecodeLedger(f)
}

// NewPriceClient opens the durable price cache and builds the market-data
// client on top of it. Callers should Flush the cache when done.
func NewPriceClient() (*wallet.Client, *wallet.PriceCache) {
	cache := wallet.OpenPriceCache(*cacheFile)
	client := wallet.NewClient(*reportingCurrency, cache, wallet.WithBaseURL(*apiBaseURL))
	return client, cache
}

// render prints markdown to stdout through the terminal renderer,
// falling back to the raw markdown when the terminal cannot be styled.
func render(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
