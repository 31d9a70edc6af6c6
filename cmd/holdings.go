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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	group string
	scope string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display merged holdings, flat or per group" }
func (*holdingsCmd) Usage() string {
	return `wpnl holdings [-g <dimension> [-s <group>]]

  Merges positions held across accounts into one ranked list. Without flags
  the whole portfolio is merged flat. With -g, one series is built per group;
  with -s, only the named group is displayed.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "g", "", "Group dimension: currency, type, institution or account.")
	f.StringVar(&c.scope, "s", "", "Restrict the drilldown to a single group key.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snapshot, err := DecodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.group == "" {
		if c.scope != "" {
			fmt.Fprintln(os.Stderr, "-s requires -g")
			return subcommands.ExitUsageError
		}
		holdings := pnl.Holdings(snapshot.Accounts)
		printMarkdown(renderer.Holdings(holdings, pnl.PositionsValue(snapshot.Accounts)))
		return subcommands.ExitSuccess
	}

	groupBy, err := pnl.ParseGroupBy(c.group)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	if c.scope != "" {
		group, ok := pnl.ScopedHoldings(snapshot.Accounts, groupBy, c.scope)
		if !ok {
			fmt.Fprintf(os.Stderr, "No %s group named %q\n", groupBy, c.scope)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.GroupHoldings(groupBy, []pnl.HoldingsGroup{group}))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.GroupHoldings(groupBy, pnl.GroupHoldings(snapshot.Accounts, groupBy)))
	return subcommands.ExitSuccess
}
