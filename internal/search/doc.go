// Package search gathers contextual sources for a query plan.
//
// The package has three layers:
//   - Provider: a live web-search backend (GoogleProvider talks to the
//     Google Custom Search JSON API)
//   - Fallback: a deterministic table of reference sources used whenever
//     live search is unavailable
//   - Client: runs a query plan against a Provider, substitutes the
//     fallback table on any provider failure, and merges the results
//
// Search failures are never fatal. Client always returns some results and
// reports what happened through a progress.Notifier.
package search
