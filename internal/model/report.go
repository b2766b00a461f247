package model

import "time"

// Report is the result of one chronos run.
// The pipeline creates it from the fragment and each step fills in its part:
// the reconstruction, the query plan and the contextual sources.
type Report struct {
	// Fragment is the original input text exactly as provided.
	Fragment string `json:"fragment"`

	// GeneratedAt is when the report was created.
	GeneratedAt time.Time `json:"generated_at"`

	// Reconstruction is the language model outcome.
	Reconstruction Reconstruction `json:"-"`

	// Plan is the query plan selected for the fragment.
	Plan QueryPlan `json:"plan"`

	// Sources are the contextual sources, unique by link.
	Sources []SearchResult `json:"sources"`

	// UsedFallback is true when at least one query was answered from the
	// static fallback table instead of live search.
	UsedFallback bool `json:"used_fallback"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// TimedOut is true if the run was cancelled before all steps ran.
	TimedOut bool `json:"timed_out"`

	// Error is the error that stopped the pipeline, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewReport creates an empty report for fragment.
func NewReport(fragment string) *Report {
	return &Report{
		Fragment:       fragment,
		GeneratedAt:    time.Now(),
		Sources:        make([]SearchResult, 0),
		PerformedSteps: make([]string, 0),
	}
}

// SourceCount returns the number of contextual sources.
func (r *Report) SourceCount() int {
	return len(r.Sources)
}

// AddSources appends sources and re-applies link deduplication so the
// uniqueness invariant on Sources holds.
func (r *Report) AddSources(sources ...SearchResult) {
	r.Sources = DedupeByLink(append(r.Sources, sources...))
}
