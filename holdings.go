package stocktracker

import "slices"

// Holdings is the set of positions of a portfolio, at most one per symbol,
// kept in insertion order.
type Holdings struct {
	currency string
	list     []Holding
	index    map[string]int // symbol -> position in list
}

// NewHoldings returns an empty set of holdings whose cost basis are expressed in currency.
func NewHoldings(currency string) *Holdings {
	return &Holdings{
		currency: currency,
		list:     make([]Holding, 0),
		index:    make(map[string]int),
	}
}

// Currency returns the currency of all the amounts in this set.
func (s *Holdings) Currency() string { return s.currency }

// Len returns the number of holdings.
func (s *Holdings) Len() int { return len(s.list) }

// Find returns the holding for symbol. The match is case-insensitive and ignores surrounding spaces.
func (s *Holdings) Find(symbol string) (Holding, bool) {
	i, ok := s.index[NormalizeSymbol(symbol)]
	if !ok {
		return Holding{}, false
	}
	return s.list[i], true
}

// All returns a copy of the holdings in insertion order.
func (s *Holdings) All() []Holding {
	return slices.Clone(s.list)
}

// Upsert adds a lot of shares bought at costBasis per share.
//
// A new symbol is appended. An existing one is replaced by the merged position
// whose cost basis is the weighted average of both lots.
// Invalid inputs return a *ValidationError and leave the store unchanged.
func (s *Holdings) Upsert(symbol string, shares Quantity, costBasis Money) (Holding, error) {
	symbol = NormalizeSymbol(symbol)
	if err := validateLot(symbol, shares, costBasis); err != nil {
		return Holding{}, err
	}
	return s.put(Holding{Symbol: symbol, Shares: shares, CostBasis: costBasis.InCurrency(s.currency)}), nil
}

// put inserts h or merges it into the existing holding with the same symbol.
func (s *Holdings) put(h Holding) Holding {
	i, ok := s.index[h.Symbol]
	if !ok {
		s.index[h.Symbol] = len(s.list)
		s.list = append(s.list, h)
		return h
	}
	merged := s.list[i].merge(h.Shares, h.CostBasis)
	s.list[i] = merged
	return merged
}

// Remove deletes the holding for symbol and returns it.
func (s *Holdings) Remove(symbol string) (Holding, bool) {
	symbol = NormalizeSymbol(symbol)
	i, ok := s.index[symbol]
	if !ok {
		return Holding{}, false
	}
	removed := s.list[i]
	s.list = append(s.list[:i], s.list[i+1:]...)
	delete(s.index, symbol)
	for j := i; j < len(s.list); j++ {
		s.index[s.list[j].Symbol] = j
	}
	return removed, true
}
