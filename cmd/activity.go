package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	pnl "github.com/mani-coder/wealthica-pnl-addon"
	"github.com/mani-coder/wealthica-pnl-addon/renderer"
)

// activityCmd holds the flags for the 'activity' subcommand.
type activityCmd struct {
	from string
}

func (*activityCmd) Name() string     { return "activity" }
func (*activityCmd) Synopsis() string { return "display bought and sold securities since a date" }
func (*activityCmd) Usage() string {
	return `wpnl activity [-from <date>]

  Aggregates the transaction log by security, one table for buys and one for
  sells, with running weighted prices and per-account share counts.
`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", pnl.Today().Add(-30).String(), "Start of the activity window (inclusive).")
}

func (c *activityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := pnl.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	snapshot, err := DecodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		return subcommands.ExitFailure
	}
	transactions, err := DecodeTransactions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	prices := pnl.PriceCache(snapshot.Accounts)
	bought := pnl.Activity(transactions, from, pnl.Buy, prices)
	sold := pnl.Activity(transactions, from, pnl.Sell, prices)

	printMarkdown(renderer.Activity(pnl.Buy, from, bought) + "\n" + renderer.Activity(pnl.Sell, from, sold))
	return subcommands.ExitSuccess
}
