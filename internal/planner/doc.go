// Package planner classifies a fragment into a topical bucket and turns it
// into the fixed list of web-search queries chronos issues.
//
// Classification and query templates are separate functions: Classify only
// decides the bucket, QueriesFor only renders the queries for a bucket, and
// Plan composes the two.
package planner
