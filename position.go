package pnl

// Position is a holding of one security within one account: cost, market
// value and unrealized gain, with the gain also kept in the security's
// native currency.
//
// Book value, market value and gain amount are in the base currency.
type Position struct {
	Security           Security
	Quantity           Quantity
	BookValue          Money
	MarketValue        Money
	GainAmount         Money
	GainCurrencyAmount Money
}

// Merge combines p with another position of the same security, held in a
// different account, into one aggregate position. All additive fields are
// summed; the gain percent is never carried over, it is recomputed from the
// sums by GainPercent.
//
// The incoming security metadata (last price, currency) wins: positions come
// from a single snapshot, so prices for one symbol are assumed identical
// across accounts.
func (p Position) Merge(q Position) Position {
	return Position{
		Security:           q.Security,
		Quantity:           p.Quantity.Add(q.Quantity),
		BookValue:          p.BookValue.Add(q.BookValue),
		MarketValue:        p.MarketValue.Add(q.MarketValue),
		GainAmount:         p.GainAmount.Add(q.GainAmount),
		GainCurrencyAmount: p.GainCurrencyAmount.Add(q.GainCurrencyAmount),
	}
}

// CostBasis returns the original invested amount still attributed to the
// position: market value minus gain.
func (p Position) CostBasis() Money { return p.MarketValue.Sub(p.GainAmount) }

// GainPercent derives the unrealized gain ratio from the aggregate amounts.
// A zero cost basis yields UndefinedPercent, not a division error.
func (p Position) GainPercent() Percent { return p.GainAmount.Ratio(p.CostBasis()) }

// BuyPrice returns the average acquisition price per share, or a zero Money
// when no shares are held.
func (p Position) BuyPrice() Money {
	if p.Quantity.IsZero() {
		return Money{}
	}
	return p.BookValue.Div(p.Quantity)
}

// Gained reports whether the position is flat or in profit. Renderers derive
// their up/down styling from this.
func (p Position) Gained() bool { return !p.GainAmount.IsNegative() }

// mergeBySymbol folds position p into the per-symbol index. First-seen
// symbol order is recorded in the returned slice so that later ranking can
// break value ties by stable input order.
func mergeBySymbol(index map[string]Position, order []string, p Position) []string {
	symbol := p.Security.Symbol
	existing, ok := index[symbol]
	if !ok {
		index[symbol] = p
		return append(order, symbol)
	}
	index[symbol] = existing.Merge(p)
	return order
}
