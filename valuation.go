package stocktracker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default number of concurrent price lookups during a valuation.
const DefaultWorkers = 4

// Row is the valuation of a single holding at the live price.
type Row struct {
	Holding Holding
	// Price is the live price, zero when not Available.
	Price Money
	// Available is false when the price source could not provide a price.
	Available  bool
	Value      Money
	CostTotal  Money
	ProfitLoss Money
}

// Totals aggregates all the rows of a valuation.
type Totals struct {
	Value      Money
	Cost       Money
	ProfitLoss Money
	// PercentChange is the profit or loss relative to the cost, only meaningful
	// when HasPercentChange is true.
	PercentChange    Percent
	HasPercentChange bool
}

// Valuation is the result of [Valuate]: one row per holding, in the same order, and the totals.
type Valuation struct {
	Rows []Row
	Totals
}

// Unavailable returns the symbols whose price could not be fetched.
func (v *Valuation) Unavailable() []string {
	var symbols []string
	seen := make(map[string]struct{})
	for _, r := range v.Rows {
		if r.Available {
			continue
		}
		if _, ok := seen[r.Holding.Symbol]; ok {
			continue
		}
		seen[r.Holding.Symbol] = struct{}{}
		symbols = append(symbols, r.Holding.Symbol)
	}
	return symbols
}

type valuateOptions struct {
	workers int
}

// ValuateOption configures [Valuate].
type ValuateOption func(*valuateOptions)

// WithWorkers sets the maximum number of concurrent price lookups. Values below 1 mean 1.
func WithWorkers(n int) ValuateOption {
	return func(o *valuateOptions) {
		o.workers = max(n, 1)
	}
}

// Valuate computes the market value and profit or loss of each holding, using
// src for live prices, and the portfolio totals.
//
// Each distinct symbol is looked up at most once. A failed lookup makes the
// price unavailable for that symbol only: the row is flagged, it counts as a
// zero value and the other rows are unaffected.
func Valuate(ctx context.Context, holdings []Holding, src PriceSource, opts ...ValuateOption) *Valuation {
	o := valuateOptions{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}

	prices := newMemo(src)
	prefetch(ctx, prices, holdings, o.workers)

	var currency string
	if len(holdings) > 0 {
		currency = holdings[0].CostBasis.Currency()
	}
	v := &Valuation{
		Rows: make([]Row, 0, len(holdings)),
		Totals: Totals{
			Value:      M(0, currency),
			Cost:       M(0, currency),
			ProfitLoss: M(0, currency),
		},
	}

	for _, h := range holdings {
		price, err := prices.Price(ctx, NormalizeSymbol(h.Symbol))
		row := Row{
			Holding:   h,
			Price:     M(0, h.CostBasis.Currency()),
			Available: err == nil,
			CostTotal: h.CostTotal(),
		}
		if row.Available {
			row.Price = M(price, h.CostBasis.Currency())
		}
		row.Value = row.Price.Mul(h.Shares)
		row.ProfitLoss = row.Value.Sub(row.CostTotal)

		v.Rows = append(v.Rows, row)
		v.Totals.Value = v.Totals.Value.Add(row.Value)
		v.Totals.Cost = v.Totals.Cost.Add(row.CostTotal)
	}

	v.Totals.ProfitLoss = v.Totals.Value.Sub(v.Totals.Cost)
	if !v.Totals.Cost.IsZero() && !v.Totals.Value.IsZero() {
		v.Totals.PercentChange = v.Totals.ProfitLoss.Ratio(v.Totals.Cost)
		v.Totals.HasPercentChange = true
	}
	return v
}

// prefetch looks up every distinct symbol concurrently, filling the memo.
func prefetch(ctx context.Context, prices *memo, holdings []Holding, workers int) {
	var g errgroup.Group
	g.SetLimit(workers)

	seen := make(map[string]struct{})
	for _, h := range holdings {
		symbol := NormalizeSymbol(h.Symbol)
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}

		g.Go(func() error {
			if _, err := prices.Price(ctx, symbol); err != nil {
				log.Debug().Err(err).Str("symbol", symbol).Msg("price unavailable")
			}
			// a missing price is not a failure of the valuation.
			return nil
		})
	}
	g.Wait()
}

// memo is a PriceSource that queries its underlying source at most once per symbol.
//
// A memo lives for a single valuation.
type memo struct {
	src     PriceSource
	mu      sync.Mutex
	entries map[string]*memoEntry
}

type memoEntry struct {
	once  sync.Once
	price decimal.Decimal
	err   error
}

func newMemo(src PriceSource) *memo {
	return &memo{src: src, entries: make(map[string]*memoEntry)}
}

func (m *memo) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	m.mu.Lock()
	e, ok := m.entries[symbol]
	if !ok {
		e = new(memoEntry)
		m.entries[symbol] = e
	}
	m.mu.Unlock()

	e.once.Do(func() {
		e.price, e.err = m.src.Price(ctx, symbol)
	})
	return e.price, e.err
}
