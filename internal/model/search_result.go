package model

// SearchResult is one contextual source returned by a web search or by the
// fallback table. Values are never modified after construction.
type SearchResult struct {
	// Title is the page title.
	Title string `json:"title"`

	// Link is the page URL. It is the identity key when merging results.
	Link string `json:"link"`

	// Snippet is a short description of the page.
	Snippet string `json:"snippet"`
}

// DedupeByLink returns results with every repeated Link removed.
// The first occurrence wins and encounter order is preserved, so applying it
// twice yields the same slice as applying it once.
func DedupeByLink(results []SearchResult) []SearchResult {
	return dedupe(results, func(r SearchResult) string { return r.Link })
}

// DedupeByTitle is like DedupeByLink but keys on Title.
// It is only used for the static fallback table, whose entries are curated by
// title. Live search results are always merged by link.
func DedupeByTitle(results []SearchResult) []SearchResult {
	return dedupe(results, func(r SearchResult) string { return r.Title })
}

// dedupe keeps the first result for each key returned by keyFn.
func dedupe(results []SearchResult, keyFn func(SearchResult) string) []SearchResult {
	unique := make([]SearchResult, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		key := keyFn(r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
