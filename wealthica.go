package pnl

import (
	"fmt"
	"log"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Boundary fetchers. The engine never performs I/O; these materialize its
// inputs from the Wealthica API and the Bank of Canada rate service into a
// Snapshot and a transaction log.

const (
	wealthicaAPI = "https://app.wealthica.com/api"
	// Bank of Canada Valet series for the daily USD/CAD noon rate.
	usdcadRatesURL = "https://www.bankofcanada.ca/valet/observations/FXUSDCAD/json?start_date="
)

// wire structs for the Wealthica payloads.

type wealthicaPosition struct {
	Security struct {
		Symbol    string          `json:"symbol"`
		Currency  string          `json:"currency"`
		LastPrice decimal.Decimal `json:"last_price"`
	} `json:"security"`
	Quantity           Quantity        `json:"quantity"`
	BookValue          decimal.Decimal `json:"book_value"`
	MarketValue        decimal.Decimal `json:"market_value"`
	GainAmount         decimal.Decimal `json:"gain_amount"`
	GainCurrencyAmount decimal.Decimal `json:"gain_currency_amount"`
}

type wealthicaInvestment struct {
	Account   string              `json:"account"`
	Type      string              `json:"type"`
	Currency  string              `json:"currency"`
	Cash      decimal.Decimal     `json:"cash"`
	Value     decimal.Decimal     `json:"value"`
	Positions []wealthicaPosition `json:"positions"`
}

type wealthicaInstitution struct {
	Name        string                `json:"name"`
	Investments []wealthicaInvestment `json:"investments"`
}

type wealthicaTransaction struct {
	Date           Date            `json:"date"`
	Symbol         string          `json:"symbol"`
	Type           string          `json:"origin_type"`
	Quantity       Quantity        `json:"quantity"`
	Amount         decimal.Decimal `json:"market_value"`
	CurrencyAmount decimal.Decimal `json:"currency_amount"`
	Currency       string          `json:"currency"`
	Investment     string          `json:"investment"`
}

func authHeader(token string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	return h
}

// FetchAccounts retrieves the institutions of the authenticated user and
// flattens their investments into engine accounts. Account names combine the
// institution and investment account so they stay unique per portfolio.
func FetchAccounts(client *http.Client, token string) ([]Account, error) {
	if client == nil {
		client = daily()
	}
	var institutions []wealthicaInstitution
	if err := jwget(client, wealthicaAPI+"/institutions", authHeader(token), &institutions); err != nil {
		return nil, fmt.Errorf("error retrieving institutions: %w", err)
	}

	var accounts []Account
	for _, inst := range institutions {
		for _, inv := range inst.Investments {
			name := inv.Account
			if inst.Name != "" {
				name = inst.Name + " " + inv.Account
			}
			account := Account{
				Name:        name,
				Type:        inv.Type,
				Institution: inst.Name,
				Currency:    inv.Currency,
				Cash:        M(inv.Cash, inv.Currency),
				Value:       M(inv.Value, BaseCurrency),
			}
			for _, p := range inv.Positions {
				sec := NewSecurity(p.Security.Symbol, p.Security.Currency, M(p.Security.LastPrice, p.Security.Currency))
				account.Positions = append(account.Positions, Position{
					Security:           sec,
					Quantity:           p.Quantity,
					BookValue:          M(p.BookValue, BaseCurrency),
					MarketValue:        M(p.MarketValue, BaseCurrency),
					GainAmount:         M(p.GainAmount, BaseCurrency),
					GainCurrencyAmount: M(p.GainCurrencyAmount, sec.Currency),
				})
			}
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// FetchTransactions retrieves the buy/sell activity log on or after the
// given date. Transactions of any other origin type are skipped.
func FetchTransactions(client *http.Client, token string, from Date) ([]Transaction, error) {
	if client == nil {
		client = daily()
	}
	addr := fmt.Sprintf("%s/transactions?from=%s", wealthicaAPI, from)
	var raw []wealthicaTransaction
	if err := jwget(client, addr, authHeader(token), &raw); err != nil {
		return nil, fmt.Errorf("error retrieving transactions: %w", err)
	}

	var transactions []Transaction
	for _, tx := range raw {
		side := Side(tx.Type)
		if side != Buy && side != Sell {
			continue
		}
		transactions = append(transactions, Transaction{
			Date:           tx.Date,
			Symbol:         tx.Symbol,
			Side:           side,
			Shares:         tx.Quantity,
			Amount:         M(tx.Amount, BaseCurrency),
			CurrencyAmount: M(tx.CurrencyAmount, tx.Currency),
			Currency:       tx.Currency,
			Account:        tx.Investment,
		})
	}
	return transactions, nil
}

// FetchRates retrieves the USD/CAD rate history since the given date into a
// chronologically ordered cache.
//
// The Valet payload nests each value under the series name, so the
// observations are walked with jsonpath rather than a rigid struct.
func FetchRates(client *http.Client, from Date) (*RateCache, error) {
	if client == nil {
		client = daily()
	}
	var jobj any
	if err := jwget(client, usdcadRatesURL+from.String(), nil, &jobj); err != nil {
		return nil, fmt.Errorf("error retrieving USD/CAD rates: %w", err)
	}

	jval, err := jsonpath.Get("$.observations[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing USD/CAD rates: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing USD/CAD rates: observations is %T, not a list", jval)
	}

	cache := NewRateCache()
	for _, jitem := range jlist {
		jdate, err := jsonpath.Get("$.d", jitem)
		if err != nil {
			return nil, fmt.Errorf("error parsing USD/CAD observation date: %w", err)
		}
		jrate, err := jsonpath.Get("$.FXUSDCAD.v", jitem)
		if err != nil {
			// a calendar day without a published rate, skip it
			log.Printf("skipping USD/CAD observation without a rate: %v", jitem)
			continue
		}
		on, err := ParseDate(fmt.Sprint(jdate))
		if err != nil {
			return nil, err
		}
		rate, err := decimal.NewFromString(fmt.Sprint(jrate))
		if err != nil {
			return nil, fmt.Errorf("error parsing USD/CAD rate %v: %w", jrate, err)
		}
		cache.Add(on, rate)
	}
	return cache, nil
}
