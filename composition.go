package pnl

import "sort"

// CashBalance is one constituent account's cash, split into CAD and USD
// buckets according to the account's declared currency.
type CashBalance struct {
	Account string
	CAD     Money
	USD     Money
}

// rankValue is the CAD+USD sum the original dashboard ranks cash rows by.
// The two buckets are deliberately added as raw amounts, not converted.
func (b CashBalance) rankValue() Money {
	return M(b.CAD.value.Add(b.USD.value), "")
}

// Group is the aggregate of all accounts sharing one group key: total market
// value, total unrealized gain, and the cash ledger of its members.
type Group struct {
	Name  string
	Value Money // sum of constituent position market values
	Gain  Money // sum of constituent position gains
	CAD   Money // summed CAD cash bucket
	USD   Money // summed USD cash bucket
	Cash  Money // CAD + USD converted at the latest cached rate

	// Accounts is the per-member cash ledger, ranked by CAD+USD descending.
	// Rows with no cash at all are kept; hiding them is a rendering choice.
	Accounts []CashBalance
}

// GainRatio derives the group's unrealized gain percentage from the
// aggregate amounts. A zero cost basis yields UndefinedPercent.
func (g Group) GainRatio() Percent { return g.Gain.Ratio(g.Value.Sub(g.Gain)) }

// Gained reports whether the group is flat or in profit.
func (g Group) Gained() bool { return !g.Gain.IsNegative() }

// groupAccumulator is the per-group accumulator scope of one Composition
// call. It is created fresh per call and discarded with the output.
type groupAccumulator struct {
	name      string
	value     Money
	gain      Money
	cash      map[string]*CashBalance
	cashOrder []string
}

// Composition partitions accounts by the given dimension and aggregates
// market value, gain and cash per group.
//
// Groups are ranked by value descending (ties keep first-seen order) and
// groups with zero market value are dropped entirely: they would contribute
// nothing but an empty slice to the chart.
//
// Cash is bucketed for 'cad' and 'usd' accounts only; an account holding
// cash in any other currency contributes zero to both buckets. This mirrors
// the dashboard the report feeds and is a documented limitation, not an
// oversight. Cash amounts are rounded to 2 decimal places before
// accumulation to keep the ledger free of floating-point drift from
// upstream.
//
// The rate cache is only consulted for groups holding USD cash, so it may be
// empty when no such cash exists.
func Composition(accounts []Account, groupBy GroupBy, rates *RateCache) ([]Group, error) {
	groups := make(map[string]*groupAccumulator)
	var order []string

	for _, account := range accounts {
		key := groupBy.Key(account)
		g, ok := groups[key]
		if !ok {
			g = &groupAccumulator{name: key, value: CAD(0), gain: CAD(0), cash: make(map[string]*CashBalance)}
			groups[key] = g
			order = append(order, key)
		}
		g.value = g.value.Add(account.PositionsValue())
		g.gain = g.gain.Add(account.PositionsGain())

		ledger, ok := g.cash[account.Name]
		if !ok {
			// explicit zero: a zero cash balance is not "no account present"
			ledger = &CashBalance{Account: account.Name, CAD: CAD(0), USD: M(0, "usd")}
			g.cash[account.Name] = ledger
			g.cashOrder = append(g.cashOrder, account.Name)
		}
		cash := account.Cash.Round(2)
		switch account.Currency {
		case "cad":
			ledger.CAD = ledger.CAD.Add(cash)
		case "usd":
			ledger.USD = ledger.USD.Add(cash)
		}
	}

	out := make([]Group, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.value.IsZero() {
			continue
		}

		cad, usd := CAD(0), M(0, "usd")
		balances := make([]CashBalance, 0, len(g.cashOrder))
		for _, name := range g.cashOrder {
			ledger := g.cash[name]
			cad = cad.Add(ledger.CAD)
			usd = usd.Add(ledger.USD)
			balances = append(balances, *ledger)
		}
		sort.SliceStable(balances, func(i, j int) bool {
			return balances[j].rankValue().LessThan(balances[i].rankValue())
		})

		cash := cad
		if !usd.IsZero() {
			on, _, err := rates.Latest()
			if err != nil {
				return nil, err
			}
			converted, err := rates.Convert(on, usd)
			if err != nil {
				return nil, err
			}
			cash = cash.Add(converted)
		}

		out = append(out, Group{
			Name:     g.name,
			Value:    g.value,
			Gain:     g.gain,
			CAD:      cad,
			USD:      usd,
			Cash:     cash,
			Accounts: balances,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Value.LessThan(out[i].Value)
	})
	return out, nil
}
