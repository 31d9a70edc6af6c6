package pnl

import "sort"

// AccountShares is one row of an activity's per-account share breakdown.
type AccountShares struct {
	Account string
	Shares  Quantity
}

// SecurityActivity aggregates every transaction of one side for one symbol
// within the activity window.
type SecurityActivity struct {
	Symbol        string
	Currency      string
	Shares        Quantity // absolute aggregate share count
	Price         Money    // absolute weighted average price, native currency
	LastPrice     Money    // current snapshot price; zero value when unknown
	Value         Money    // base currency
	CurrencyValue Money    // native currency

	// Accounts lists the share count contributed per account, ranked by
	// shares descending.
	Accounts []AccountShares
}

// Change derives the percent move from the weighted trade price to the
// current price. A symbol absent from the price cache has no last price and
// the change is UndefinedPercent.
func (s SecurityActivity) Change() Percent {
	if s.LastPrice.IsZero() {
		return UndefinedPercent
	}
	return s.LastPrice.Sub(s.Price).Ratio(s.LastPrice)
}

// Gained reports whether the security trades above its weighted trade price.
// An undefined change reports false; callers that need to tell unknown from
// lost consult Change().IsDefined() first.
func (s SecurityActivity) Gained() bool { return s.Change() > 0 }

// activityAccumulator folds transactions of one symbol incrementally: the
// running weighted average price is recomputed after every fold, not just at
// the end, so intermediate state is always consistent.
type activityAccumulator struct {
	symbol        string
	currency      string
	shares        Quantity
	value         Money
	currencyValue Money
	price         Money
	accounts      map[string]Quantity
	accountOrder  []string
}

func (a *activityAccumulator) fold(tx Transaction) {
	a.shares = a.shares.Add(tx.Shares)
	a.value = a.value.Add(tx.Amount)
	a.currencyValue = a.currencyValue.Add(tx.CurrencyAmount)

	if _, ok := a.accounts[tx.Account]; !ok {
		a.accounts[tx.Account] = Q(0)
		a.accountOrder = append(a.accountOrder, tx.Account)
	}
	a.accounts[tx.Account] = a.accounts[tx.Account].Add(tx.Shares)

	if a.shares.IsZero() {
		a.price = Money{}
		return
	}
	a.price = a.currencyValue.Div(a.shares)
}

// Activity filters the transaction log to one side on or after the cutoff
// date (inclusive), groups it by symbol and aggregates shares, native and
// base value and the per-account share breakdown.
//
// Shares and price are reported as absolute values; the sign only classified
// the side upstream. Rows are ranked by base-currency value descending, ties
// keeping first-seen symbol order. Last prices come from the supplied
// current snapshot price cache, not from the log.
func Activity(transactions []Transaction, from Date, side Side, prices map[string]Money) []SecurityActivity {
	index := make(map[string]*activityAccumulator)
	var order []string

	for _, tx := range transactions {
		if tx.Side != side || !tx.Date.OnOrAfter(from) {
			continue
		}
		acc, ok := index[tx.Symbol]
		if !ok {
			acc = &activityAccumulator{
				symbol:   tx.Symbol,
				currency: tx.Currency,
				accounts: make(map[string]Quantity),
			}
			index[tx.Symbol] = acc
			order = append(order, tx.Symbol)
		}
		acc.fold(tx)
	}

	out := make([]SecurityActivity, 0, len(order))
	for _, symbol := range order {
		acc := index[symbol]

		breakdown := make([]AccountShares, 0, len(acc.accountOrder))
		for _, name := range acc.accountOrder {
			breakdown = append(breakdown, AccountShares{Account: name, Shares: acc.accounts[name].Abs()})
		}
		sort.SliceStable(breakdown, func(i, j int) bool {
			return breakdown[j].Shares.LessThan(breakdown[i].Shares)
		})

		out = append(out, SecurityActivity{
			Symbol:        acc.symbol,
			Currency:      acc.currency,
			Shares:        acc.shares.Abs(),
			Price:         acc.price.Abs(),
			LastPrice:     prices[symbol],
			Value:         acc.value,
			CurrencyValue: acc.currencyValue,
			Accounts:      breakdown,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Value.LessThan(out[i].Value)
	})
	return out
}

// PriceCache indexes the current snapshot price of every held security by
// symbol, for use as the activity price cache.
func PriceCache(accounts []Account) map[string]Money {
	prices := make(map[string]Money)
	for _, account := range accounts {
		for _, position := range account.Positions {
			prices[position.Security.Symbol] = position.Security.LastPrice
		}
	}
	return prices
}
