package stocktracker

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValuate(t *testing.T) {
	holdings := []Holding{{Symbol: "MSFT", Shares: Q(10), CostBasis: USD(50)}}
	src := newFakeSource(map[string]float64{"MSFT": 60})

	v := Valuate(context.Background(), holdings, src)

	if len(v.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(v.Rows))
	}
	row := v.Rows[0]
	if !row.Available {
		t.Errorf("Rows[0].Available = false, want true")
	}
	checks := []struct {
		name      string
		got, want Money
	}{
		{"Price", row.Price, USD(60)},
		{"Value", row.Value, USD(600)},
		{"CostTotal", row.CostTotal, USD(500)},
		{"ProfitLoss", row.ProfitLoss, USD(100)},
		{"Totals.Value", v.Totals.Value, USD(600)},
		{"Totals.Cost", v.Totals.Cost, USD(500)},
		{"Totals.ProfitLoss", v.Totals.ProfitLoss, USD(100)},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !v.HasPercentChange || !v.PercentChange.Equal(20) {
		t.Errorf("PercentChange = %v (defined: %v), want +20.00%%", v.PercentChange, v.HasPercentChange)
	}
	if got := v.PercentChange.SignedString(); got != "+20.00%" {
		t.Errorf("PercentChange.SignedString() = %q, want %q", got, "+20.00%")
	}
}

func TestValuate_Totals(t *testing.T) {
	holdings := []Holding{
		{Symbol: "AAPL", Shares: Q(3), CostBasis: USD(175.25)},
		{Symbol: "MSFT", Shares: Q(0.5), CostBasis: USD(410)},
		{Symbol: "GOOG", Shares: Q(12), CostBasis: USD(99.99)},
	}
	prices := map[string]float64{"AAPL": 180.5, "MSFT": 400.1, "GOOG": 140.33}
	v := Valuate(context.Background(), holdings, newFakeSource(prices))

	var value, cost decimal.Decimal
	for i, h := range holdings {
		p := decimal.NewFromFloat(prices[h.Symbol])
		value = value.Add(p.Mul(h.Shares.Decimal()))
		cost = cost.Add(h.CostBasis.Decimal().Mul(h.Shares.Decimal()))
		if v.Rows[i].Holding.Symbol != h.Symbol {
			t.Errorf("Rows[%d].Symbol = %q, want %q", i, v.Rows[i].Holding.Symbol, h.Symbol)
		}
	}
	if !v.Totals.Value.Decimal().Equal(value) {
		t.Errorf("Totals.Value = %v, want %v", v.Totals.Value.Decimal(), value)
	}
	if !v.Totals.Cost.Decimal().Equal(cost) {
		t.Errorf("Totals.Cost = %v, want %v", v.Totals.Cost.Decimal(), cost)
	}
	if !v.Totals.ProfitLoss.Equal(v.Totals.Value.Sub(v.Totals.Cost)) {
		t.Errorf("Totals.ProfitLoss = %v, want Value - Cost = %v", v.Totals.ProfitLoss, v.Totals.Value.Sub(v.Totals.Cost))
	}
}

func TestValuate_Unavailable(t *testing.T) {
	holdings := []Holding{
		{Symbol: "MSFT", Shares: Q(10), CostBasis: USD(50)},
		{Symbol: "DELISTED", Shares: Q(5), CostBasis: USD(20)},
	}
	v := Valuate(context.Background(), holdings, newFakeSource(map[string]float64{"MSFT": 60}))

	row := v.Rows[1]
	if row.Available {
		t.Errorf("Rows[1].Available = true, want false")
	}
	if !row.Value.IsZero() || !row.ProfitLoss.Equal(USD(-100)) {
		t.Errorf("Rows[1] = value %v, P/L %v, want $0.00, -$100.00", row.Value, row.ProfitLoss)
	}
	if !v.Rows[0].Available || !v.Rows[0].Value.Equal(USD(600)) {
		t.Errorf("Rows[0] was affected by an unavailable price: %+v", v.Rows[0])
	}
	if !v.Totals.Value.Equal(USD(600)) || !v.Totals.Cost.Equal(USD(600)) {
		t.Errorf("Totals = %v / %v, want $600.00 / $600.00", v.Totals.Value, v.Totals.Cost)
	}
	if got := v.Unavailable(); len(got) != 1 || got[0] != "DELISTED" {
		t.Errorf("Unavailable() = %v, want [DELISTED]", got)
	}
}

func TestValuate_PercentGuard(t *testing.T) {
	testCases := []struct {
		name     string
		holdings []Holding
		prices   map[string]float64
	}{
		{"empty", nil, nil},
		{"zero cost", []Holding{{Symbol: "GIFT", Shares: Q(1), CostBasis: USD(0)}}, map[string]float64{"GIFT": 10}},
		{"zero value", []Holding{{Symbol: "GONE", Shares: Q(1), CostBasis: USD(10)}}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := Valuate(context.Background(), tc.holdings, newFakeSource(tc.prices))
			if v.HasPercentChange {
				t.Errorf("HasPercentChange = true (%v), want false", v.PercentChange)
			}
		})
	}
}

func TestValuate_Empty(t *testing.T) {
	v := Valuate(context.Background(), nil, newFakeSource(nil))
	if len(v.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(v.Rows))
	}
	if !v.Totals.Value.IsZero() || !v.Totals.Cost.IsZero() || !v.Totals.ProfitLoss.IsZero() {
		t.Errorf("Totals = %+v, want zeros", v.Totals)
	}
	if v.HasPercentChange {
		t.Errorf("HasPercentChange = true, want false")
	}
}

func TestValuate_LooksUpEachSymbolOnce(t *testing.T) {
	holdings := []Holding{
		{Symbol: "AAPL", Shares: Q(2), CostBasis: USD(100)},
		{Symbol: "MSFT", Shares: Q(1), CostBasis: USD(10)},
		{Symbol: "aapl ", Shares: Q(2), CostBasis: USD(150)},
		{Symbol: "NOPE", Shares: Q(1), CostBasis: USD(1)},
		{Symbol: "NOPE", Shares: Q(1), CostBasis: USD(1)},
	}
	src := newFakeSource(map[string]float64{"AAPL": 120, "MSFT": 11})

	for _, workers := range []int{1, 2, 8} {
		src.calls = make(map[string]int)
		v := Valuate(context.Background(), holdings, src, WithWorkers(workers))

		for symbol, n := range src.calls {
			if n != 1 {
				t.Errorf("workers=%d: price of %q looked up %d times, want 1", workers, symbol, n)
			}
		}
		if len(src.calls) != 3 {
			t.Errorf("workers=%d: looked up %d symbols, want 3", workers, len(src.calls))
		}
		if !v.Rows[0].Value.Equal(USD(240)) || !v.Rows[2].Value.Equal(USD(240)) {
			t.Errorf("workers=%d: AAPL rows = %v, %v, want $240.00 each", workers, v.Rows[0].Value, v.Rows[2].Value)
		}
	}
}

func TestMemo(t *testing.T) {
	var calls atomic.Int32
	src := PriceFunc(func(ctx context.Context, symbol string) (decimal.Decimal, error) {
		calls.Add(1)
		return decimal.NewFromInt(1), nil
	})
	m := newMemo(src)
	for range 3 {
		if _, err := m.Price(context.Background(), "AAPL"); err != nil {
			t.Fatalf("Price() unexpected error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("underlying source called %d times, want 1", calls.Load())
	}
}
