// Package quotes provides live market price sources for stocktracker.
//
// Every source implements stocktracker.PriceSource. Failures of any kind are
// returned as errors and the valuation treats them as unavailable prices.
package quotes
