// Package fundlens provides the core computation engine for analysing
// mutual-fund investments from historical NAV (net asset value) data.
//
// The engine is stateless: callers build a NavSeries from raw provider
// rows and pass it, together with a request describing the investment
// pattern, to one of the mode functions:
//   - LumpSum: a single purchase held to a target date.
//   - SIP and StepUpSIP: periodic purchases, optionally escalating.
//   - SWP and StepUpSWP: periodic withdrawals from an initial corpus,
//     optionally escalating.
//   - ReturnsForPeriod: trailing simple and annualized returns.
//   - RollingReturns: annualized returns over every sliding window of a
//     given length, with summary statistics.
//
// All monetary math runs on float64 and is rounded only when results
// are assembled, so intermediate unit balances keep full precision.
// NAV histories are kept in date.History containers, which give the
// date-resolution rules (nearest on-or-before, nearest on-or-after)
// their O(log n) lookups.
//
// This package serves as the foundational logic for the `fundlens`
// command-line tool and HTTP service, ensuring that every surface
// computes returns from a single source of truth.
package fundlens
