package pnl

// USD is a helper for tests to create usd money from const
func USD(v float64) Money { return M(v, "usd") }

// pos builds a base-currency position for tests: book value and market
// value in CAD, gain derived as market minus book.
func pos(symbol, currency string, quantity, book, market float64) Position {
	gain := market - book
	return Position{
		Security:           NewSecurity(symbol, currency, M(0, currency)),
		Quantity:           Q(quantity),
		BookValue:          CAD(book),
		MarketValue:        CAD(market),
		GainAmount:         CAD(gain),
		GainCurrencyAmount: M(gain, currency),
	}
}

// acct builds a test account holding the given positions.
func acct(name, typ, currency string, cash float64, positions ...Position) Account {
	value := cash
	for _, p := range positions {
		value += p.MarketValue.value.InexactFloat64()
	}
	return Account{
		Name:      name,
		Type:      typ,
		Currency:  currency,
		Cash:      M(cash, currency),
		Value:     CAD(value),
		Positions: positions,
	}
}
