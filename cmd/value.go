package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mroul/wallet"
	"github.com/mroul/wallet/renderer"
)

// valueCmd computes the daily valuation series and renders one performance
// chart per calendar year.
type valueCmd struct {
	outDir string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "compute the daily valuation series and render yearly charts" }
func (*valueCmd) Usage() string {
	return `wax value [-o <dir>]

  Replays the ledger, resamples the state to one snapshot per day, values
  each day's open positions at market prices, and writes one PNG chart per
  calendar year (report_<year>.png) comparing wallet value to net invested.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outDir, "o", ".", "Directory to write the chart PNGs into")
}

func (c *valueCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	client, cache := NewPriceClient()
	defer cache.Flush()

	engine := wallet.NewEngine(client, *reportingCurrency)
	engine.Progress = func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rreplaying %d/%d", done, total)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	}
	result := engine.Process(ledger)

	series := wallet.ValuationSeries(result.Snapshots, client, *reportingCurrency)
	if len(series) == 0 {
		fmt.Println("Nothing to value: the ledger is empty.")
		return subcommands.ExitSuccess
	}

	for _, year := range ledger.Years() {
		png, err := renderer.PerformanceChart(series, year, *reportingCurrency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %d: %v\n", year, err)
			continue
		}
		name := fmt.Sprintf("%s/report_%d.png", c.outDir, year)
		if err := os.WriteFile(name, png, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", name, err)
			return subcommands.ExitFailure
		}
		fmt.Println("Wrote", name)
	}

	last := series[len(series)-1]
	fmt.Printf("Latest valuation (%s): %s for %s net invested\n",
		last.Date, last.Value, last.NetInvested)
	if len(last.Unpriced) > 0 {
		fmt.Printf("Unpriced assets on %s: %v\n", last.Date, last.Unpriced)
	}
	return subcommands.ExitSuccess
}
