package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mroul/wallet"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	csvFile string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import an exchange transaction-export CSV into the ledger" }
func (*importCmd) Usage() string {
	return `wax import -i <export.csv>

  Reads the exchange's transaction-export CSV, normalizes operation labels,
  filters ignored non-economic rows, sorts chronologically, and writes the
  ledger file in JSONL format.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "i", "", "Path to the transaction-export CSV")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.csvFile == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -i <export.csv>")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.csvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	ledger, err := wallet.ImportTransactions(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing export: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := wallet.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	from, to := ledger.Range()
	fmt.Printf("Imported %d transactions (%s to %s) into %s\n",
		ledger.Len(), from.Format("2006-01-02"), to.Format("2006-01-02"), *ledgerFile)
	return subcommands.ExitSuccess
}
