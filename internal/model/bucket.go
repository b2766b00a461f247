package model

import "strings"

// Bucket is the topical classification of a fragment.
// The planner selects exactly one bucket per fragment and the bucket decides
// which search queries are issued.
type Bucket int

const (
	// BucketGeneral is used when the fragment matches no keyword set.
	// It is the zero value so an unclassified fragment is always general.
	BucketGeneral Bucket = iota

	// BucketSlang is used for fragments containing internet slang markers
	// such as "brb" or "afk".
	BucketSlang

	// BucketHistorical is used for fragments containing historical or
	// archaeological markers such as "scroll" or "manuscript".
	BucketHistorical
)

// String returns the lower-case bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketGeneral:
		return "general"
	case BucketSlang:
		return "slang"
	case BucketHistorical:
		return "historical"
	default:
		return "unknown"
	}
}

// Description returns a short human-readable label used in reports.
func (b Bucket) Description() string {
	switch b {
	case BucketSlang:
		return "internet slang"
	case BucketHistorical:
		return "historical/archaeological text"
	default:
		return "general text"
	}
}

// ParseBucket converts a bucket name back into a Bucket.
// Matching is case-insensitive. The second return value is false when the
// name is not a known bucket.
func ParseBucket(name string) (Bucket, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "general":
		return BucketGeneral, true
	case "slang":
		return BucketSlang, true
	case "historical":
		return BucketHistorical, true
	default:
		return BucketGeneral, false
	}
}

// QueryPlan is the ordered list of search queries chosen for one fragment.
// It is built once by the planner and never modified afterwards.
type QueryPlan struct {
	// Bucket is the classification that produced the queries.
	Bucket Bucket `json:"bucket"`

	// Queries are issued in order. The planner always produces three.
	Queries []string `json:"queries"`
}

// Len returns the number of queries in the plan.
func (p QueryPlan) Len() int {
	return len(p.Queries)
}

// First returns the first query, or an empty string for an empty plan.
func (p QueryPlan) First() string {
	if len(p.Queries) == 0 {
		return ""
	}
	return p.Queries[0]
}
