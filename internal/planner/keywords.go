package planner

import (
	"strings"

	"golang.org/x/text/cases"
)

// SlangMarkers are the internet-slang markers that select BucketSlang.
// "smh" and "g2g" are included so every slang term known to the search
// fallback table also classifies the fragment as slang.
var SlangMarkers = []string{"brb", "afk", "lol", "omg", "ttyl", "imo", "wtf", "smh", "g2g"}

// HistoricalMarkers are the historical/archaeological markers that select
// BucketHistorical.
var HistoricalMarkers = []string{"ancient", "scroll", "manuscript", "historical", "treasure"}

// Fold returns s case-folded for case-insensitive comparison.
// It applies full Unicode case folding, not just ASCII lowering.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsAny reports whether text contains any of terms, ignoring case.
// Terms are matched as plain substrings, so "lol" matches "lollipop".
func ContainsAny(text string, terms []string) bool {
	folded := Fold(text)
	for _, term := range terms {
		if strings.Contains(folded, Fold(term)) {
			return true
		}
	}
	return false
}
