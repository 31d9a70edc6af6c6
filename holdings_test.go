package pnl

import (
	"math"
	"reflect"
	"testing"
)

func TestHoldings_MergesAcrossAccounts(t *testing.T) {
	holdings := Holdings(testAccounts())

	if len(holdings) != 2 {
		t.Fatalf("len(holdings) = %d, want 2", len(holdings))
	}
	// XIC 3300+1500 = 4800 outranks AAPL 1500+700 = 2200.
	if holdings[0].Security.Symbol != "XIC" || holdings[1].Security.Symbol != "AAPL" {
		t.Fatalf("ranking = %s, %s, want XIC, AAPL",
			holdings[0].Security.Symbol, holdings[1].Security.Symbol)
	}
	if want := CAD(4800); !holdings[0].MarketValue.Equal(want) {
		t.Errorf("XIC market value = %v, want %v", holdings[0].MarketValue, want)
	}
	if want := Q(150); !holdings[0].Quantity.Equal(want) {
		t.Errorf("XIC quantity = %v, want %v", holdings[0].Quantity, want)
	}
	for i, h := range holdings {
		if h.Rank != i {
			t.Errorf("holdings[%d].Rank = %d, want %d", i, h.Rank, i)
		}
	}
}

func TestHoldings_AccountBreakdown(t *testing.T) {
	holdings := Holdings(testAccounts())

	xic := holdings[0]
	want := []AccountQuantity{
		{Account: "RRSP CAD", Quantity: Q(100.0)},
		{Account: "TFSA", Quantity: Q(50.0)},
	}
	if !reflect.DeepEqual(xic.Accounts, want) {
		t.Errorf("XIC breakdown = %v, want %v", xic.Accounts, want)
	}

	aapl := holdings[1]
	if len(aapl.Accounts) != 2 || aapl.Accounts[0].Account != "RRSP CAD" {
		t.Errorf("AAPL breakdown = %v, want RRSP CAD first (10 > 5 shares)", aapl.Accounts)
	}
}

func TestGroupHoldings_ScopesTheMerge(t *testing.T) {
	groups := GroupHoldings(testAccounts(), GroupByType)

	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	// RRSP (5500) outranks TFSA (1500).
	if groups[0].Name != "RRSP" || groups[1].Name != "TFSA" {
		t.Fatalf("group order = %s, %s, want RRSP, TFSA", groups[0].Name, groups[1].Name)
	}

	rrsp := groups[0]
	if len(rrsp.Holdings) != 2 {
		t.Fatalf("len(rrsp.Holdings) = %d, want 2", len(rrsp.Holdings))
	}
	// within RRSP only: XIC 3300, AAPL merged 2200.
	if want := CAD(2200); !rrsp.Holdings[1].MarketValue.Equal(want) {
		t.Errorf("scoped AAPL market value = %v, want %v", rrsp.Holdings[1].MarketValue, want)
	}

	tfsa := groups[1]
	if len(tfsa.Holdings) != 1 || tfsa.Holdings[0].Security.Symbol != "XIC" {
		t.Errorf("TFSA holdings = %v, want only XIC", tfsa.Holdings)
	}
}

func TestScopedHoldings(t *testing.T) {
	group, ok := ScopedHoldings(testAccounts(), GroupByType, "TFSA")
	if !ok {
		t.Fatal("ScopedHoldings() did not find TFSA")
	}
	if want := CAD(1500); !group.Value.Equal(want) {
		t.Errorf("TFSA value = %v, want %v", group.Value, want)
	}

	if _, ok := ScopedHoldings(testAccounts(), GroupByType, "RESP"); ok {
		t.Error("ScopedHoldings() found a group that does not exist")
	}
}

func TestHoldings_SmallRowsAreKept(t *testing.T) {
	accounts := append(testAccounts(), acct("Penny", "margin", "cad", 0,
		pos("PENNY", "cad", 1, 1, 1)))

	holdings := Holdings(accounts)
	last := holdings[len(holdings)-1]
	if last.Security.Symbol != "PENNY" {
		t.Fatalf("smallest holding = %s, want PENNY", last.Security.Symbol)
	}
	// a sub-threshold weight is the renderer's business: the row stays.
	total := PositionsValue(accounts)
	if w := last.Weight(total); !w.IsDefined() || w > 1 {
		t.Errorf("Weight() = %v, want a small defined percentage", w)
	}
}

func TestHoldings_WeightsOverPositionsValueSumToWhole(t *testing.T) {
	// testAccounts carry cash, so the declared account values exceed the
	// position market values. The holdings denominator is positions only.
	accounts := testAccounts()
	holdings := Holdings(accounts)
	total := PositionsValue(accounts)

	sum := CAD(0)
	for _, h := range holdings {
		sum = sum.Add(h.MarketValue)
	}
	if !sum.Equal(total) {
		t.Errorf("PositionsValue() = %v, want merged market value sum %v", total, sum)
	}

	var weights float64
	for _, h := range holdings {
		weights += float64(h.Weight(total))
	}
	if math.Abs(weights-100) > 1e-9 {
		t.Errorf("weights sum to %v, want 100", weights)
	}
	if declared := TotalValue(accounts); declared.Equal(total) {
		t.Fatalf("fixture has no cash: TotalValue %v equals PositionsValue", declared)
	}
}

func TestHoldings_EqualValueTieKeepsInputOrder(t *testing.T) {
	accounts := []Account{
		acct("RRSP", "rrsp", "cad", 0,
			pos("ZZZ", "cad", 10, 900, 1000),
			pos("AAA", "cad", 20, 950, 1000),
		),
	}

	for i := 0; i < 3; i++ {
		holdings := Holdings(accounts)
		if holdings[0].Security.Symbol != "ZZZ" || holdings[1].Security.Symbol != "AAA" {
			t.Fatalf("tied ranking = %s, %s, want first-seen order ZZZ, AAA",
				holdings[0].Security.Symbol, holdings[1].Security.Symbol)
		}
		if holdings[0].Rank != 0 || holdings[1].Rank != 1 {
			t.Errorf("ranks = %d, %d, want 0, 1", holdings[0].Rank, holdings[1].Rank)
		}
	}
}

func TestGroupHoldings_EqualValueTieKeepsInputOrder(t *testing.T) {
	accounts := []Account{
		acct("TFSA", "tfsa", "cad", 0, pos("XIC", "cad", 10, 900, 1000)),
		acct("RRSP", "rrsp", "cad", 0, pos("VFV", "cad", 10, 900, 1000)),
	}

	for i := 0; i < 3; i++ {
		groups := GroupHoldings(accounts, GroupByType)
		if groups[0].Name != "TFSA" || groups[1].Name != "RRSP" {
			t.Fatalf("tied group order = %s, %s, want first-seen order TFSA, RRSP",
				groups[0].Name, groups[1].Name)
		}
	}
}

func TestHoldings_Idempotence(t *testing.T) {
	accounts := testAccounts()
	first := Holdings(accounts)
	second := Holdings(accounts)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Holdings() is not idempotent")
	}
}
