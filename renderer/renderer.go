// Package renderer turns aggregation reports into markdown. It only builds
// text: thresholds, colors and chart concerns belong to whoever consumes the
// underlying data.
package renderer

import (
	"fmt"
	"io"
	"strings"

	pnl "github.com/mani-coder/wealthica-pnl-addon"
)

// Composition renders the account groups of one dimension as a markdown
// table, one cash ledger block per group.
func Composition(groupBy pnl.GroupBy, groups []pnl.Group, total pnl.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Composition\n\n", groupBy.Title())
	fmt.Fprintf(&b, "Total value: CAD %s\n\n", total)

	fmt.Fprintln(&b, "| Group | Value | Share | P/L ($) | P/L (%) | Cash |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, g := range groups {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			g.Name,
			g.Value,
			g.Value.Ratio(total),
			g.Gain.SignedString(),
			g.GainRatio().SignedString(),
			g.Cash,
		)
	}

	for _, g := range groups {
		writeCashLedger(&b, g)
	}
	return b.String()
}

// writeCashLedger prints the per-account cash table of a group. Rows without
// any cash are elided here, not in the engine.
func writeCashLedger(w io.Writer, g pnl.Group) {
	var rows strings.Builder
	for _, balance := range g.Accounts {
		if balance.CAD.IsZero() && balance.USD.IsZero() {
			continue
		}
		cells := make([]string, 0, 2)
		if !balance.CAD.IsZero() {
			cells = append(cells, fmt.Sprintf("C$ %s", balance.CAD))
		}
		if !balance.USD.IsZero() {
			cells = append(cells, fmt.Sprintf("U$ %s", balance.USD))
		}
		fmt.Fprintf(&rows, "| %s | %s |\n", balance.Account, strings.Join(cells, " "))
	}
	if rows.Len() == 0 {
		return
	}

	fmt.Fprintf(w, "\n## %s cash\n\n", g.Name)
	fmt.Fprintln(w, "| Account | Cash |")
	fmt.Fprintln(w, "|:---|---:|")
	io.WriteString(w, rows.String())
}

// Holdings renders a flat ranked holdings series.
func Holdings(holdings []pnl.Holding, total pnl.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	writeHoldingsTable(&b, holdings, total)
	return b.String()
}

// GroupHoldings renders the drill-down series of every group.
func GroupHoldings(groupBy pnl.GroupBy, groups []pnl.HoldingsGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings by %s\n\n", groupBy)
	for _, g := range groups {
		fmt.Fprintf(&b, "## %s\n\n", g.Name)
		writeHoldingsTable(&b, g.Holdings, g.Value)
	}
	return b.String()
}

func writeHoldingsTable(w io.Writer, holdings []pnl.Holding, total pnl.Money) {
	fmt.Fprintln(w, "| Symbol | Currency | Shares | Buy Price | Last Price | Value | Share | P/L ($) | P/L (%) |")
	fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|")
	for _, h := range holdings {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			h.Security.Symbol,
			h.Security.DisplayCurrency(),
			h.Quantity,
			h.BuyPrice(),
			h.Security.LastPrice,
			h.MarketValue,
			h.Weight(total),
			h.GainAmount.SignedString(),
			h.GainPercent().SignedString(),
		)
	}
	fmt.Fprintln(w)

	for _, h := range holdings {
		if len(h.Accounts) < 2 {
			continue
		}
		fmt.Fprintf(w, "%s is held in", h.Security.Symbol)
		for i, row := range h.Accounts {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, " %s (%s)", row.Account, row.Quantity)
		}
		fmt.Fprintln(w, ".")
		fmt.Fprintln(w)
	}
}

// Activity renders one side of the trading activity as a markdown table.
func Activity(side pnl.Side, from pnl.Date, rows []pnl.SecurityActivity) string {
	title := "Bought"
	if side == pnl.Sell {
		title = "Sold"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Securities %s since %s\n\n", title, from)
	if len(rows) == 0 {
		fmt.Fprintln(&b, "No activity.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Currency | Last Price | Price | Shares | Amount (CAD) | Change % |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	for _, row := range rows {
		lastPrice := "-"
		if !row.LastPrice.IsZero() {
			lastPrice = row.LastPrice.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Symbol,
			strings.ToUpper(row.Currency),
			lastPrice,
			row.Price,
			row.Shares,
			row.Value,
			row.Change().SignedString(),
		)
	}

	for _, row := range rows {
		if len(row.Accounts) < 2 {
			continue
		}
		fmt.Fprintf(&b, "\n%s traded in", row.Symbol)
		for i, acc := range row.Accounts {
			if i > 0 {
				fmt.Fprint(&b, ",")
			}
			fmt.Fprintf(&b, " %s (%s)", acc.Account, acc.Shares)
		}
		fmt.Fprintln(&b, ".")
	}
	return b.String()
}
