package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	pnl "github.com/mani-coder/wealthica-pnl-addon"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	token string
	from  string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch accounts, rates and transactions from Wealthica" }
func (*fetchCmd) Usage() string {
	return `wpnl fetch -token <api_token> [-from <date>]

  Retrieves the institutions, the USD/CAD rate history and the buy/sell
  transaction log, and writes the snapshot and transaction files consumed by
  the report commands. Responses are cached on disk for a day.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "token", os.Getenv("WEALTHICA_TOKEN"), "Wealthica API token (defaults to $WEALTHICA_TOKEN).")
	f.StringVar(&c.from, "from", pnl.Today().Add(-365).String(), "Start of the rate and transaction history.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.token == "" {
		fmt.Fprintln(os.Stderr, "Error: an API token is required (flag -token or $WEALTHICA_TOKEN)")
		return subcommands.ExitUsageError
	}
	from, err := pnl.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	accounts, err := pnl.FetchAccounts(nil, c.token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, err := pnl.FetchRates(nil, from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}
	transactions, err := pnl.FetchTransactions(nil, c.token, from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := EncodeSnapshot(&pnl.Snapshot{Accounts: accounts, Rates: rates}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeTransactions(transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d accounts, %d rates and %d transactions.\n", len(accounts), rates.Len(), len(transactions))
	return subcommands.ExitSuccess
}
