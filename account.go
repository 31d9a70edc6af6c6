package pnl

import (
	"fmt"
	"strings"
)

// Account is one brokerage account: its cash balance in the account's own
// currency, its total value, and its open positions. The account name is the
// identity key for cash aggregation.
type Account struct {
	Name        string
	Type        string // rrsp, tfsa, margin, ...
	Institution string
	Currency    string // cash currency, lowercase ('cad', 'usd', ...)
	Cash        Money
	Value       Money
	Positions   []Position
}

// GroupBy selects the dimension used to partition accounts for composition
// analysis. Every account maps to exactly one group for a given dimension.
type GroupBy int

const (
	GroupByCurrency GroupBy = iota
	GroupByType
	GroupByInstitution
	GroupByAccount
)

// ParseGroupBy parses a group dimension name as given on the command line.
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(s) {
	case "currency":
		return GroupByCurrency, nil
	case "type":
		return GroupByType, nil
	case "institution":
		return GroupByInstitution, nil
	case "account":
		return GroupByAccount, nil
	default:
		return 0, fmt.Errorf("unknown group dimension %q (want currency, type, institution or account)", s)
	}
}

func (g GroupBy) String() string {
	switch g {
	case GroupByCurrency:
		return "currency"
	case GroupByType:
		return "type"
	case GroupByInstitution:
		return "institution"
	case GroupByAccount:
		return "account"
	default:
		return "unknown"
	}
}

// Title returns the human title used as a report heading.
func (g GroupBy) Title() string {
	switch g {
	case GroupByCurrency:
		return "USD vs CAD"
	case GroupByType:
		return "Account Type"
	case GroupByInstitution:
		return "Institution"
	default:
		return "Account"
	}
}

// Key returns the stable, total group key of the account for this dimension.
// Accounts with a blank value for the dimension all land in "unknown" rather
// than vanishing from the partition.
func (g GroupBy) Key(a Account) string {
	var key string
	switch g {
	case GroupByCurrency:
		key = strings.ToUpper(a.Currency)
	case GroupByType:
		key = strings.ToUpper(a.Type)
	case GroupByInstitution:
		key = a.Institution
	case GroupByAccount:
		key = a.Name
	}
	if key == "" {
		return "unknown"
	}
	return key
}

// PositionsValue sums the market value of all open positions of the account.
func (a Account) PositionsValue() Money {
	total := CAD(0)
	for _, p := range a.Positions {
		total = total.Add(p.MarketValue)
	}
	return total
}

// PositionsGain sums the unrealized gain of all open positions of the account.
func (a Account) PositionsGain() Money {
	total := CAD(0)
	for _, p := range a.Positions {
		total = total.Add(p.GainAmount)
	}
	return total
}

// TotalValue sums the declared value of the given accounts.
func TotalValue(accounts []Account) Money {
	total := CAD(0)
	for _, a := range accounts {
		total = total.Add(a.Value)
	}
	return total
}

// PositionsValue sums the market value of every open position across the
// given accounts. This is the denominator for holdings weights: cash is not
// part of a holdings series, so weighting against TotalValue would leave the
// series summing below 100%.
func PositionsValue(accounts []Account) Money {
	total := CAD(0)
	for _, a := range accounts {
		total = total.Add(a.PositionsValue())
	}
	return total
}
