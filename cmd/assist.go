package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	pnl "github.com/mani-coder/wealthica-pnl-addon"
	"github.com/mani-coder/wealthica-pnl-addon/renderer"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	model string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant a question about the portfolio" }
func (*assistCmd) Usage() string {
	return `wpnl assist <question>

  Sends the composition and activity reports to Gemini together with the
  question and prints the answer. Requires Gemini credentials in the
  environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a question is required")
		return subcommands.ExitUsageError
	}
	question := strings.Join(f.Args(), " ")

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

	groups, err := pnl.Composition(snapshot.Accounts, pnl.GroupByType, snapshot.Rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing composition: %v\n", err)
		return subcommands.ExitFailure
	}

	from := pnl.Today().Add(-30)
	prices := pnl.PriceCache(snapshot.Accounts)
	var reports strings.Builder
	reports.WriteString(renderer.Composition(pnl.GroupByType, groups, pnl.TotalValue(snapshot.Accounts)))
	reports.WriteString("\n")
	reports.WriteString(renderer.Holdings(pnl.Holdings(snapshot.Accounts), pnl.PositionsValue(snapshot.Accounts)))
	reports.WriteString("\n")
	reports.WriteString(renderer.Activity(pnl.Buy, from, pnl.Activity(transactions, from, pnl.Buy, prices)))
	reports.WriteString("\n")
	reports.WriteString(renderer.Activity(pnl.Sell, from, pnl.Activity(transactions, from, pnl.Sell, prices)))

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompt := fmt.Sprintf(
		"You are a personal portfolio analyst. Based only on the following reports, answer the question.\n\n%s\n\nQuestion: %s",
		reports.String(), question)

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error asking Gemini:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
