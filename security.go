package pnl

import "strings"

// Security identifies a tradable instrument within a portfolio snapshot.
// The symbol is the identity key for every holdings merge.
type Security struct {
	Symbol    string
	Currency  string // 3-letter code, lowercase canonical
	LastPrice Money  // in the security's native currency
}

// NewSecurity returns a Security with the currency in canonical lowercase form.
func NewSecurity(symbol, currency string, lastPrice Money) Security {
	return Security{Symbol: symbol, Currency: strings.ToLower(currency), LastPrice: lastPrice}
}

// DisplayCurrency returns the currency code in the uppercase form used for display.
func (s Security) DisplayCurrency() string { return strings.ToUpper(s.Currency) }
