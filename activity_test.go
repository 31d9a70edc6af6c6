package pnl

import (
	"testing"
	"time"
)

func tx(date Date, symbol string, side Side, shares, amount float64, account string) Transaction {
	return Transaction{
		Date:           date,
		Symbol:         symbol,
		Side:           side,
		Shares:         Q(shares),
		Amount:         CAD(amount),
		CurrencyAmount: CAD(amount),
		Currency:       "cad",
		Account:        account,
	}
}

func TestActivity_AggregatesBySymbol(t *testing.T) {
	transactions := []Transaction{
		tx(NewDate(2024, time.January, 5), "ABC", Buy, 10, 1000, "RRSP"),
		tx(NewDate(2024, time.January, 10), "ABC", Buy, 5, 520, "TFSA"),
	}

	got := Activity(transactions, NewDate(2024, time.January, 1), Buy, nil)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}

	abc := got[0]
	if abc.Symbol != "ABC" {
		t.Errorf("Symbol = %s, want ABC", abc.Symbol)
	}
	if want := Q(15); !abc.Shares.Equal(want) {
		t.Errorf("Shares = %v, want %v", abc.Shares, want)
	}
	if want := CAD(1520); !abc.Value.Equal(want) {
		t.Errorf("Value = %v, want %v", abc.Value, want)
	}
	// 1520 / 15 = 101.33 weighted average
	if want := CAD(101.33); !abc.Price.Round(2).Equal(want) {
		t.Errorf("Price = %v, want %v", abc.Price.Round(2), want)
	}

	if len(abc.Accounts) != 2 {
		t.Fatalf("len(Accounts) = %d, want 2", len(abc.Accounts))
	}
	if abc.Accounts[0].Account != "RRSP" || !abc.Accounts[0].Shares.Equal(Q(10)) {
		t.Errorf("Accounts[0] = %v, want RRSP with 10 shares", abc.Accounts[0])
	}
	if abc.Accounts[1].Account != "TFSA" || !abc.Accounts[1].Shares.Equal(Q(5)) {
		t.Errorf("Accounts[1] = %v, want TFSA with 5 shares", abc.Accounts[1])
	}
}

func TestActivity_FiltersSideAndCutoff(t *testing.T) {
	cutoff := NewDate(2024, time.January, 10)
	transactions := []Transaction{
		tx(NewDate(2024, time.January, 5), "OLD", Buy, 10, 1000, "RRSP"),
		tx(cutoff, "ABC", Buy, 5, 500, "RRSP"), // on the cutoff: included
		tx(NewDate(2024, time.January, 15), "XYZ", Sell, -5, 600, "RRSP"),
	}

	bought := Activity(transactions, cutoff, Buy, nil)
	if len(bought) != 1 || bought[0].Symbol != "ABC" {
		t.Fatalf("bought = %v, want only ABC", bought)
	}

	sold := Activity(transactions, cutoff, Sell, nil)
	if len(sold) != 1 || sold[0].Symbol != "XYZ" {
		t.Fatalf("sold = %v, want only XYZ", sold)
	}
}

func TestActivity_SellsReportAbsoluteSharesAndPrice(t *testing.T) {
	transactions := []Transaction{
		tx(NewDate(2024, time.March, 1), "XYZ", Sell, -5, 600, "RRSP"),
		tx(NewDate(2024, time.March, 2), "XYZ", Sell, -10, 1100, "RRSP"),
	}

	sold := Activity(transactions, NewDate(2024, time.January, 1), Sell, nil)
	if len(sold) != 1 {
		t.Fatalf("len(sold) = %d, want 1", len(sold))
	}
	if want := Q(15); !sold[0].Shares.Equal(want) {
		t.Errorf("Shares = %v, want %v", sold[0].Shares, want)
	}
	if sold[0].Price.IsNegative() {
		t.Errorf("Price = %v, want absolute value", sold[0].Price)
	}
	if want := Q(15); !sold[0].Accounts[0].Shares.Equal(want) {
		t.Errorf("breakdown shares = %v, want %v", sold[0].Accounts[0].Shares, want)
	}
}

func TestActivity_RanksByValueDescending(t *testing.T) {
	from := NewDate(2024, time.January, 1)
	transactions := []Transaction{
		tx(NewDate(2024, time.January, 5), "SMALL", Buy, 1, 100, "RRSP"),
		tx(NewDate(2024, time.January, 6), "BIG", Buy, 1, 900, "RRSP"),
		tx(NewDate(2024, time.January, 7), "MID", Buy, 1, 500, "RRSP"),
	}

	got := Activity(transactions, from, Buy, nil)
	want := []string{"BIG", "MID", "SMALL"}
	for i, symbol := range want {
		if got[i].Symbol != symbol {
			t.Errorf("got[%d].Symbol = %s, want %s", i, got[i].Symbol, symbol)
		}
	}
}

func TestActivity_EqualValueTieKeepsInputOrder(t *testing.T) {
	from := NewDate(2024, time.January, 1)
	transactions := []Transaction{
		tx(NewDate(2024, time.January, 5), "ZZZ", Buy, 10, 500, "RRSP"),
		tx(NewDate(2024, time.January, 6), "AAA", Buy, 5, 500, "RRSP"),
	}

	for i := 0; i < 3; i++ {
		got := Activity(transactions, from, Buy, nil)
		if got[0].Symbol != "ZZZ" || got[1].Symbol != "AAA" {
			t.Fatalf("tied ranking = %s, %s, want first-seen order ZZZ, AAA",
				got[0].Symbol, got[1].Symbol)
		}
	}
}

func TestActivity_MissingLastPriceYieldsUndefinedChange(t *testing.T) {
	transactions := []Transaction{
		tx(NewDate(2024, time.January, 5), "ABC", Buy, 10, 1000, "RRSP"),
	}
	prices := map[string]Money{} // ABC absent from the snapshot

	got := Activity(transactions, NewDate(2024, time.January, 1), Buy, prices)
	if change := got[0].Change(); change.IsDefined() {
		t.Errorf("Change() = %v, want undefined", change)
	}
	// an unknown change never styles as a gain
	if got[0].Gained() {
		t.Error("Gained() = true, want false for an undefined change")
	}
}

func TestActivity_ChangeFromPriceCache(t *testing.T) {
	transactions := []Transaction{
		tx(NewDate(2024, time.January, 5), "ABC", Buy, 10, 1000, "RRSP"),
	}
	prices := map[string]Money{"ABC": CAD(125)}

	got := Activity(transactions, NewDate(2024, time.January, 1), Buy, prices)
	// (125 - 100) / 125 = 20%
	if want := Percent(20); !got[0].Change().Equal(want) {
		t.Errorf("Change() = %v, want %v", got[0].Change(), want)
	}
	if !got[0].Gained() {
		t.Error("Gained() = false, want true")
	}
}

func TestActivity_RunningWeightedPriceIsIncremental(t *testing.T) {
	acc := &activityAccumulator{symbol: "ABC", currency: "cad", accounts: make(map[string]Quantity)}

	acc.fold(tx(NewDate(2024, time.January, 5), "ABC", Buy, 10, 1000, "RRSP"))
	if want := CAD(100); !acc.price.Equal(want) {
		t.Errorf("price after first fold = %v, want %v", acc.price, want)
	}

	acc.fold(tx(NewDate(2024, time.January, 10), "ABC", Buy, 5, 520, "TFSA"))
	if want := CAD(101.33); !acc.price.Round(2).Equal(want) {
		t.Errorf("price after second fold = %v, want %v", acc.price.Round(2), want)
	}
}
