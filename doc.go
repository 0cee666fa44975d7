// Package stocktracker keeps a list of stock holdings and values them at live
// market prices.
//
// The core functionalities include:
//   - Holdings: one position per symbol with its number of shares and its
//     average cost per share. Adding shares to an existing position merges the
//     lots into a weighted average cost basis.
//   - Valuation: a stateless computation that overlays live prices, provided
//     by a [PriceSource], on the holdings to compute the market value and the
//     profit or loss of each position and of the whole portfolio.
//   - Persistence: holdings are stored in a small, human readable json file,
//     read leniently so that a damaged file never prevents using the tool.
//
// This package serves as the foundational logic for the `stk` command-line
// tool.
package stocktracker
