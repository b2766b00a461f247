package planner

import "github.com/nao1215/chronos/internal/model"

// Classify selects the bucket for fragment.
// Buckets are checked in a fixed priority order (slang, then historical) and
// the first match wins; anything else is general.
func Classify(fragment string) model.Bucket {
	switch {
	case ContainsAny(fragment, SlangMarkers):
		return model.BucketSlang
	case ContainsAny(fragment, HistoricalMarkers):
		return model.BucketHistorical
	default:
		return model.BucketGeneral
	}
}

// QueriesFor renders the three queries for bucket.
// The first query always quotes the fragment; the other two are generic
// reference queries for the bucket's topic.
func QueriesFor(bucket model.Bucket, fragment string) []string {
	quoted := `"` + fragment + `"`

	switch bucket {
	case model.BucketSlang:
		return []string{
			quoted + " internet slang meaning",
			"common internet acronyms abbreviations",
			"online chat slang dictionary",
		}
	case model.BucketHistorical:
		return []string{
			quoted + " historical documents",
			"ancient manuscript reconstruction",
			"archaeological text analysis",
		}
	default:
		return []string{
			quoted,
			"text reconstruction techniques",
			"linguistic analysis",
		}
	}
}

// Plan classifies fragment and returns its query plan.
func Plan(fragment string) model.QueryPlan {
	bucket := Classify(fragment)
	return model.QueryPlan{
		Bucket:  bucket,
		Queries: QueriesFor(bucket, fragment),
	}
}
