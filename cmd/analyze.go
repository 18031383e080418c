package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/mroul/wallet"
	"github.com/mroul/wallet/renderer"
)

// analyzeCmd replays the full ledger and reports the resulting state.
type analyzeCmd struct {
	quiet bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "replay the ledger and report holdings and taxable events" }
func (*analyzeCmd) Usage() string {
	return `wax analyze [-q]

  Replays the whole ledger chronologically, rebuilding current holdings and
  the net fiat invested, then prints the holdings valued at today's prices
  and the list of taxable events.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "Do not print replay progress")
}

func (c *analyzeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	client, cache := NewPriceClient()
	defer cache.Flush()

	engine := wallet.NewEngine(client, *reportingCurrency)
	if !c.quiet {
		engine.Progress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rreplaying %d/%d", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
	result := engine.Process(ledger)

	prices := wallet.BatchPrices(client, result.Holdings.Assets(), time.Now())
	render(renderer.HoldingsMarkdown(result.Holdings, result.NetInvested, prices, *reportingCurrency))
	render(renderer.TaxableEventsMarkdown(result.TaxableEvents))
	return subcommands.ExitSuccess
}
