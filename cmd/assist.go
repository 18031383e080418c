package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/mroul/wallet"
	"github.com/mroul/wallet/agent"
	"github.com/mroul/wallet/renderer"
)

// assistCmd starts an interactive AI session grounded on the fiscal report.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask an AI assistant about the fiscal report" }
func (*assistCmd) Usage() string {
	return `wax assist [question...]

  Computes the fiscal report and starts an interactive session with an AI
  assistant grounded on it. An optional question given on the command line
  is asked first.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	report := renderer.FiscalReportMarkdown(wallet.NewFiscalReport(ledger, *reportingCurrency))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin)
	if err := a.Start(ctx, client, report); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the adviser:", err)
		return subcommands.ExitFailure
	}

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Adviser failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
