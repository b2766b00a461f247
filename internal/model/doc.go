// Package model defines the data structures shared across chronos.
//
// This package contains the following main types:
//   - SearchResult: A contextual source (title, link, snippet)
//   - Bucket and QueryPlan: The classification of a fragment and the
//     queries it produces
//   - Reconstruction: The success-or-failure result of the language model
//   - Report: Everything gathered for one fragment, consumed by the
//     report writers
//
// All values are transient and live for a single invocation.
package model
