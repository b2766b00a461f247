package search

import (
	"strings"

	"github.com/nao1215/chronos/internal/model"
	"github.com/nao1215/chronos/internal/planner"
)

// MaxFallbackResults caps the size of a fallback result set.
const MaxFallbackResults = 4

// baseSources are always part of a fallback result set, first.
var baseSources = []model.SearchResult{
	{
		Title:   "Wikipedia - Internet Slang",
		Link:    "https://en.wikipedia.org/wiki/Internet_slang",
		Snippet: "Comprehensive overview of internet slang, acronyms, and their historical development.",
	},
	{
		Title:   "Urban Dictionary",
		Link:    "https://www.urbandictionary.com/",
		Snippet: "Crowdsourced online dictionary of slang words, phrases, and cultural references.",
	},
	{
		Title:   "NetLingo Internet Dictionary",
		Link:    "https://www.netlingo.com/",
		Snippet: "Extensive dictionary of internet slang, acronyms, and text messaging shorthand.",
	},
}

// termSource is a fallback entry selected by a slang term in the query.
type termSource struct {
	term   string
	source model.SearchResult
}

// termSources are checked in this order; every matching term appends its
// entry.
var termSources = []termSource{
	{"brb", model.SearchResult{
		Title:   "BRB - What does BRB mean?",
		Link:    "https://www.cyberdefinitions.com/definitions/BRB.html",
		Snippet: `BRB stands for "Be Right Back". Used in text and chat to indicate temporary absence.`,
	}},
	{"afk", model.SearchResult{
		Title:   "AFK - Away From Keyboard",
		Link:    "https://www.cyberdefinitions.com/definitions/AFK.html",
		Snippet: `AFK means "Away From Keyboard". Indicates temporary unavailability in online contexts.`,
	}},
	{"lol", model.SearchResult{
		Title:   "LOL - Laughing Out Loud",
		Link:    "https://www.cyberdefinitions.com/definitions/LOL.html",
		Snippet: `LOL stands for "Laughing Out Loud". One of the most common internet acronyms.`,
	}},
	{"omg", model.SearchResult{
		Title:   "OMG - Oh My God",
		Link:    "https://www.cyberdefinitions.com/definitions/OMG.html",
		Snippet: `OMG means "Oh My God". Expresses surprise, excitement, or shock.`,
	}},
	{"ttyl", model.SearchResult{
		Title:   "TTYL - Talk To You Later",
		Link:    "https://www.cyberdefinitions.com/definitions/TTYL.html",
		Snippet: `TTYL stands for "Talk To You Later". Used to end conversations temporarily.`,
	}},
	{"imo", model.SearchResult{
		Title:   "IMO - In My Opinion",
		Link:    "https://www.cyberdefinitions.com/definitions/IMO.html",
		Snippet: `IMO means "In My Opinion". Prefaces subjective statements in online discussions.`,
	}},
	{"smh", model.SearchResult{
		Title:   "SMH - Shaking My Head",
		Link:    "https://www.cyberdefinitions.com/definitions/SMH.html",
		Snippet: `SMH means "Shaking My Head". Expresses disappointment or disbelief.`,
	}},
	{"g2g", model.SearchResult{
		Title:   "G2G - Got To Go",
		Link:    "https://www.cyberdefinitions.com/definitions/G2G.html",
		Snippet: `G2G means "Got To Go". Indicates urgent departure from conversation.`,
	}},
}

// historicalTerms select the historical sources. The list also contains
// "artifact", which the planner does not use for classification.
var historicalTerms = []string{"ancient", "scroll", "manuscript", "historical", "artifact", "treasure"}

var historicalSources = []model.SearchResult{
	{
		Title:   "Textual Criticism - Wikipedia",
		Link:    "https://en.wikipedia.org/wiki/Textual_criticism",
		Snippet: "Study of textual reconstruction and analysis of historical documents and manuscripts.",
	},
	{
		Title:   "Papyrology - Ancient Document Study",
		Link:    "https://en.wikipedia.org/wiki/Papyrology",
		Snippet: "Academic discipline concerned with the study of ancient texts on papyrus and other materials.",
	},
}

// platformTerms select the platform-history sources.
var platformTerms = []string{"top 8", "myspace"}

var platformSources = []model.SearchResult{
	{
		Title:   "MySpace Top 8 - Wikipedia",
		Link:    "https://en.wikipedia.org/wiki/Myspace#Features",
		Snippet: "Explanation of MySpace Top Friends feature and its social impact in the 2000s.",
	},
	{
		Title:   "Internet History - MySpace",
		Link:    "https://en.wikipedia.org/wiki/Myspace",
		Snippet: "Historical overview of MySpace and its cultural significance in early social media.",
	},
}

// Fallback returns the static sources for query.
//
// The set starts with the three base sources, then appends the entry of
// every slang term found in query, the historical sources when a historical
// term is found, and the platform sources when "top 8" or "myspace" is found.
// Matching is case-insensitive substring matching. The result is
// deduplicated by title and truncated to MaxFallbackResults. The same query
// always yields the same ordered result.
func Fallback(query string) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(baseSources)+len(termSources)+len(historicalSources)+len(platformSources))
	results = append(results, baseSources...)

	folded := planner.Fold(query)
	for _, ts := range termSources {
		if strings.Contains(folded, ts.term) {
			results = append(results, ts.source)
		}
	}

	if planner.ContainsAny(query, historicalTerms) {
		results = append(results, historicalSources...)
	}

	if planner.ContainsAny(query, platformTerms) {
		results = append(results, platformSources...)
	}

	results = model.DedupeByTitle(results)
	if len(results) > MaxFallbackResults {
		results = results[:MaxFallbackResults]
	}

	return results
}
