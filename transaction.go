package pnl

// Side classifies a transaction as an acquisition or a disposal.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Transaction is one buy or sell from the activity log.
//
// Shares is signed; the sign only classifies direction upstream and is taken
// as absolute value everywhere it is displayed. Amount is in the base
// currency, CurrencyAmount in the security's native currency.
type Transaction struct {
	Date           Date
	Symbol         string
	Side           Side
	Shares         Quantity
	Amount         Money
	CurrencyAmount Money
	Currency       string
	Account        string
}
