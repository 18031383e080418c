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

// reportCmd prints the per-year fiscal report.
type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the per-year fiscal report" }
func (*reportCmd) Usage() string {
	return `wax report

  Aggregates the ledger's fiat flows per calendar year: deposits,
  withdrawals, and the taxable disposal volume with its supporting lines.
`
}

func (*reportCmd) SetFlags(_ *flag.FlagSet) {}

func (*reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	reports := wallet.NewFiscalReport(ledger, *reportingCurrency)
	render(renderer.FiscalReportMarkdown(reports))
	return subcommands.ExitSuccess
}
