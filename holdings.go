package pnl

import "sort"

// AccountQuantity is one row of a holding's per-account breakdown.
type AccountQuantity struct {
	Account  string
	Quantity Quantity
}

// Holding is one security merged across every account in scope.
type Holding struct {
	Position

	// Rank is the zero-based index of the holding within its ranked series,
	// exposed so a renderer can derive shading deterministically.
	Rank int

	// Accounts lists every constituent account holding the symbol with its
	// quantity, ranked by quantity descending. Consumed by tooltips; the
	// engine builds the data only, never markup.
	Accounts []AccountQuantity
}

// Weight returns the holding's share of the given total. Entries below any
// display threshold are still present in the series: filtering small labels
// is a rendering choice, not an aggregation one.
func (h Holding) Weight(total Money) Percent { return h.MarketValue.Ratio(total) }

// HoldingsGroup is the ranked holdings series of one account group, keyed by
// the group's name for drill-down navigation.
type HoldingsGroup struct {
	Name     string
	Value    Money
	Holdings []Holding
}

// Holdings merges the positions of all accounts into one flat series ranked
// by market value descending, independent of any group dimension.
func Holdings(accounts []Account) []Holding {
	return buildHoldings(accounts)
}

// GroupHoldings partitions accounts by the given dimension and builds one
// ranked holdings series per group, with groups themselves ranked by total
// value descending.
func GroupHoldings(accounts []Account, groupBy GroupBy) []HoldingsGroup {
	byKey := make(map[string][]Account)
	var order []string
	for _, account := range accounts {
		key := groupBy.Key(account)
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], account)
	}

	out := make([]HoldingsGroup, 0, len(order))
	for _, key := range order {
		scoped := byKey[key]
		value := CAD(0)
		for _, a := range scoped {
			value = value.Add(a.PositionsValue())
		}
		out = append(out, HoldingsGroup{Name: key, Value: value, Holdings: buildHoldings(scoped)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Value.LessThan(out[i].Value)
	})
	return out
}

// ScopedHoldings builds the drill-down series for a single group key.
func ScopedHoldings(accounts []Account, groupBy GroupBy, key string) (HoldingsGroup, bool) {
	for _, g := range GroupHoldings(accounts, groupBy) {
		if g.Name == key {
			return g, true
		}
	}
	return HoldingsGroup{}, false
}

// buildHoldings merges positions across the accounts in scope and ranks the
// result. Value ties keep first-seen symbol order so repeated calls with
// identical input produce identical output.
func buildHoldings(accounts []Account) []Holding {
	index := make(map[string]Position)
	var order []string
	for _, account := range accounts {
		for _, position := range account.Positions {
			order = mergeBySymbol(index, order, position)
		}
	}

	holdings := make([]Holding, 0, len(order))
	for _, symbol := range order {
		holdings = append(holdings, Holding{
			Position: index[symbol],
			Accounts: accountBreakdown(accounts, symbol),
		})
	}
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[j].MarketValue.LessThan(holdings[i].MarketValue)
	})
	for i := range holdings {
		holdings[i].Rank = i
	}
	return holdings
}

// accountBreakdown collects (account, quantity) for every account in scope
// holding the symbol, ranked by quantity descending.
func accountBreakdown(accounts []Account, symbol string) []AccountQuantity {
	var rows []AccountQuantity
	for _, account := range accounts {
		for _, position := range account.Positions {
			if position.Security.Symbol == symbol {
				rows = append(rows, AccountQuantity{Account: account.Name, Quantity: position.Quantity})
			}
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[j].Quantity.LessThan(rows[i].Quantity)
	})
	return rows
}
