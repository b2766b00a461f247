package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/chronos/internal/model"
	"github.com/nao1215/chronos/internal/planner"
	"github.com/nao1215/chronos/internal/progress"
	"github.com/nao1215/chronos/internal/reconstruct"
	"github.com/nao1215/chronos/internal/search"
)

// Step names.
const (
	StepReconstruct = "reconstruct"
	StepPlan        = "plan"
	StepSearch      = "search"
)

var (
	// ErrReconstructionFailed wraps the cause of a failed reconstruction.
	ErrReconstructionFailed = errors.New("reconstruction failed")

	// ErrNoQueryPlan is returned by SearchStep when no plan was selected.
	ErrNoQueryPlan = errors.New("no query plan selected")
)

// ReconstructStep asks the Reconstructor to expand the fragment.
type ReconstructStep struct {
	reconstructor reconstruct.Reconstructor
	notifier      progress.Notifier
	logger        *slog.Logger
}

// ReconstructStepOption configures a ReconstructStep.
type ReconstructStepOption func(*ReconstructStep)

// WithReconstructNotifier sets where progress lines are printed.
func WithReconstructNotifier(n progress.Notifier) ReconstructStepOption {
	return func(s *ReconstructStep) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithReconstructLogger sets a custom logger for the step.
func WithReconstructLogger(logger *slog.Logger) ReconstructStepOption {
	return func(s *ReconstructStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewReconstructStep creates a reconstruction step.
func NewReconstructStep(r reconstruct.Reconstructor, opts ...ReconstructStepOption) *ReconstructStep {
	s := &ReconstructStep{
		reconstructor: r,
		notifier:      progress.Discard,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ReconstructStep) Name() string {
	return StepReconstruct
}

// Do stores the reconstruction in the report.
// A failed reconstruction is stored too, and returned as an error wrapping
// ErrReconstructionFailed so the pipeline stops before searching.
func (s *ReconstructStep) Do(ctx context.Context, report *model.Report) error {
	s.notifier.Infof("🔄 Step 1: Reconstructing text using AI...")

	rec := s.reconstructor.Reconstruct(ctx, report.Fragment)
	report.Reconstruction = rec

	if rec.Failed() {
		s.notifier.Errorf("Reconstruction failed: %s", rec.Display())
		return fmt.Errorf("%w: %w", ErrReconstructionFailed, rec.Err)
	}

	s.notifier.Successf("Reconstructed: %s", rec.Text)
	s.logger.Debug("fragment reconstructed", "length", len(rec.Text))
	return nil
}

// PlanStep classifies the fragment and stores its query plan.
type PlanStep struct {
	logger *slog.Logger

	// forced, when set, replaces classification.
	forced *model.Bucket
}

// PlanStepOption configures a PlanStep.
type PlanStepOption func(*PlanStep)

// WithBucket skips classification and always plans queries for b.
func WithBucket(b model.Bucket) PlanStepOption {
	return func(s *PlanStep) {
		s.forced = &b
	}
}

// NewPlanStep creates a planning step. A nil logger uses slog.Default().
func NewPlanStep(logger *slog.Logger, opts ...PlanStepOption) *PlanStep {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PlanStep{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *PlanStep) Name() string {
	return StepPlan
}

// Do selects the query plan. It never fails.
func (s *PlanStep) Do(_ context.Context, report *model.Report) error {
	if s.forced != nil {
		report.Plan = model.QueryPlan{
			Bucket:  *s.forced,
			Queries: planner.QueriesFor(*s.forced, report.Fragment),
		}
	} else {
		report.Plan = planner.Plan(report.Fragment)
	}
	s.logger.Debug("query plan selected",
		"bucket", report.Plan.Bucket.String(),
		"forced", s.forced != nil,
		"queries", report.Plan.Len(),
	)
	return nil
}

// SearchStep runs the query plan through the search client.
type SearchStep struct {
	client   *search.Client
	notifier progress.Notifier
}

// NewSearchStep creates a search step. A nil notifier prints nothing.
func NewSearchStep(client *search.Client, notifier progress.Notifier) *SearchStep {
	if notifier == nil {
		notifier = progress.Discard
	}
	return &SearchStep{client: client, notifier: notifier}
}

// Name returns the step name.
func (s *SearchStep) Name() string {
	return StepSearch
}

// Do collects contextual sources for the report's plan.
// Unavailable search is not an error; the only failure is a missing plan.
func (s *SearchStep) Do(ctx context.Context, report *model.Report) error {
	if report.Plan.Len() == 0 {
		return ErrNoQueryPlan
	}

	s.notifier.Infof("🔍 Step 2: Searching for contextual information...")

	collection := s.client.Collect(ctx, report.Plan)
	report.AddSources(collection.Results...)
	report.UsedFallback = report.UsedFallback || collection.UsedFallback

	s.notifier.Successf("Found %d contextual sources", report.SourceCount())
	return nil
}

// Default builds the reconstruct, plan and search pipeline.
// pipelineOpts configure the Pipeline itself; planOpts configure its PlanStep.
func Default(r reconstruct.Reconstructor, client *search.Client, notifier progress.Notifier, logger *slog.Logger, pipelineOpts []Option, planOpts ...PlanStepOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := New(append([]Option{WithLogger(logger)}, pipelineOpts...)...)
	p.AddSteps(
		NewReconstructStep(r, WithReconstructNotifier(notifier), WithReconstructLogger(logger)),
		NewPlanStep(logger, planOpts...),
		NewSearchStep(client, notifier),
	)
	return p
}
