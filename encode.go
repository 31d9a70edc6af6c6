package pnl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Snapshot is the materialized input of the engine: the accounts with their
// open positions, and the rate history needed to normalize foreign cash.
// Transactions travel separately as a JSONL log.
type Snapshot struct {
	Accounts []Account
	Rates    *RateCache
}

// wire structs, so that engine types stay free of persistence concerns.

type jsonSecurity struct {
	Symbol    string          `json:"symbol"`
	Currency  string          `json:"currency"`
	LastPrice decimal.Decimal `json:"last_price"`
}

type jsonPosition struct {
	Security           jsonSecurity    `json:"security"`
	Quantity           Quantity        `json:"quantity"`
	BookValue          decimal.Decimal `json:"book_value"`
	MarketValue        decimal.Decimal `json:"market_value"`
	GainAmount         decimal.Decimal `json:"gain_amount"`
	GainCurrencyAmount decimal.Decimal `json:"gain_currency_amount"`
}

type jsonAccount struct {
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Institution string          `json:"institution,omitempty"`
	Currency    string          `json:"currency"`
	Cash        decimal.Decimal `json:"cash"`
	Value       decimal.Decimal `json:"value"`
	Positions   []jsonPosition  `json:"positions"`
}

type jsonRate struct {
	Date Date            `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

type jsonSnapshot struct {
	Accounts []jsonAccount `json:"accounts"`
	Rates    []jsonRate    `json:"rates"`
}

type jsonTransaction struct {
	Date           Date            `json:"date"`
	Symbol         string          `json:"symbol"`
	Side           Side            `json:"type"`
	Shares         Quantity        `json:"shares"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyAmount decimal.Decimal `json:"currency_amount"`
	Currency       string          `json:"currency"`
	Account        string          `json:"account"`
}

func (p jsonPosition) position() Position {
	sec := NewSecurity(p.Security.Symbol, p.Security.Currency, M(p.Security.LastPrice, p.Security.Currency))
	return Position{
		Security:           sec,
		Quantity:           p.Quantity,
		BookValue:          M(p.BookValue, BaseCurrency),
		MarketValue:        M(p.MarketValue, BaseCurrency),
		GainAmount:         M(p.GainAmount, BaseCurrency),
		GainCurrencyAmount: M(p.GainCurrencyAmount, sec.Currency),
	}
}

func encodePosition(p Position) jsonPosition {
	return jsonPosition{
		Security: jsonSecurity{
			Symbol:    p.Security.Symbol,
			Currency:  p.Security.Currency,
			LastPrice: p.Security.LastPrice.value,
		},
		Quantity:           p.Quantity,
		BookValue:          p.BookValue.value,
		MarketValue:        p.MarketValue.value,
		GainAmount:         p.GainAmount.value,
		GainCurrencyAmount: p.GainCurrencyAmount.value,
	}
}

// DecodeSnapshot reads a portfolio snapshot from its JSON form.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var raw jsonSnapshot
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}

	snapshot := &Snapshot{Rates: NewRateCache()}
	for _, a := range raw.Accounts {
		account := Account{
			Name:        a.Name,
			Type:        a.Type,
			Institution: a.Institution,
			Currency:    a.Currency,
			Cash:        M(a.Cash, a.Currency),
			Value:       M(a.Value, BaseCurrency),
		}
		for _, p := range a.Positions {
			account.Positions = append(account.Positions, p.position())
		}
		snapshot.Accounts = append(snapshot.Accounts, account)
	}
	for _, r := range raw.Rates {
		snapshot.Rates.Add(r.Date, r.Rate)
	}
	return snapshot, nil
}

// EncodeSnapshot writes the snapshot in its canonical JSON form. Rates keep
// their chronological insertion order.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	raw := jsonSnapshot{}
	for _, account := range s.Accounts {
		a := jsonAccount{
			Name:        account.Name,
			Type:        account.Type,
			Institution: account.Institution,
			Currency:    account.Currency,
			Cash:        account.Cash.value,
			Value:       account.Value.value,
			Positions:   []jsonPosition{},
		}
		for _, p := range account.Positions {
			a.Positions = append(a.Positions, encodePosition(p))
		}
		raw.Accounts = append(raw.Accounts, a)
	}
	if s.Rates != nil {
		for _, on := range s.Rates.Dates() {
			rate, _ := s.Rates.Rate(on)
			raw.Rates = append(raw.Rates, jsonRate{Date: on, Rate: rate})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

// DecodeTransactions decodes a stream of JSONL transaction data, one
// transaction per line.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var raw jsonTransaction
		if err := json.Unmarshal(lineBytes, &raw); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
		}
		transactions = append(transactions, Transaction{
			Date:           raw.Date,
			Symbol:         raw.Symbol,
			Side:           raw.Side,
			Shares:         raw.Shares,
			Amount:         M(raw.Amount, BaseCurrency),
			CurrencyAmount: M(raw.CurrencyAmount, raw.Currency),
			Currency:       raw.Currency,
			Account:        raw.Account,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

// EncodeTransactions writes the transaction log in JSONL form.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	for _, tx := range transactions {
		raw := jsonTransaction{
			Date:           tx.Date,
			Symbol:         tx.Symbol,
			Side:           tx.Side,
			Shares:         tx.Shares,
			Amount:         tx.Amount.value,
			CurrencyAmount: tx.CurrencyAmount.value,
			Currency:       tx.Currency,
			Account:        tx.Account,
		}
		line, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
