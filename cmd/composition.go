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

// compositionCmd holds the flags for the 'composition' subcommand.
type compositionCmd struct {
	group    string
	holdings bool
}

func (*compositionCmd) Name() string     { return "composition" }
func (*compositionCmd) Synopsis() string { return "display the holdings composition by group" }
func (*compositionCmd) Usage() string {
	return `wpnl composition [-g <dimension>] [-holdings]

  Groups the accounts of the snapshot by a dimension (currency, type,
  institution or account) and displays value, unrealized P/L and cash per
  group. With -holdings, each group is expanded into its ranked holdings.
`
}

func (c *compositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "g", "currency", "Group dimension: currency, type, institution or account.")
	f.BoolVar(&c.holdings, "holdings", false, "also display the per-group holdings drilldown")
}

func (c *compositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	groupBy, err := pnl.ParseGroupBy(c.group)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	snapshot, err := DecodeSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	groups, err := pnl.Composition(snapshot.Accounts, groupBy, snapshot.Rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing composition: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.Composition(groupBy, groups, pnl.TotalValue(snapshot.Accounts))
	if c.holdings {
		md += "\n" + renderer.GroupHoldings(groupBy, pnl.GroupHoldings(snapshot.Accounts, groupBy))
	}
	printMarkdown(md)

	return subcommands.ExitSuccess
}
