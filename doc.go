// Package wallet reconstructs a crypto wallet's balance sheet from an
// exchange transaction export, and classifies which events are taxable
// under a legal-tender realization rule.
//
// The core functionalities include:
//   - Ledger Reconstruction: replaying the chronological transaction stream
//     group by group to rebuild per-asset holdings and the cumulative net
//     fiat invested, with exact-decimal arithmetic throughout.
//   - Taxable Event Classification: only disposals into a legal-tender
//     currency (EUR, USD, GBP, ...) realize value for tax purposes;
//     crypto-to-crypto and crypto-to-stablecoin conversions are deferred.
//   - Historical Pricing: minute-bar close prices fetched from the exchange
//     market-data API, behind a persistent price cache, a bounded-retry
//     policy for rate limiting, and a bounded-concurrency batch fetcher.
//   - Reporting: per-year fiscal summaries and daily valuation series,
//     consumed by the renderer package and the `wax` command-line tool.
//
// This package serves as the foundational logic for the `wax` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package wallet
