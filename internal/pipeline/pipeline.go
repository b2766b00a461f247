package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/chronos/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the report
// filled in by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// Returns an error if the step fails critically; non-critical problems
	// should be recorded in the report and return nil.
	Do(ctx context.Context, report *model.Report) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// StepHook is called after each step that ran, with the step's error.
type StepHook func(step Step, err error)

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps executing steps after one fails.
	continueOnError bool

	afterStep StepHook
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution
// even when a step fails. The first error is still recorded in the report.
// The default is to stop, which is what keeps search from running after a
// failed reconstruction.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// WithStepHook registers a function called after every executed step.
func WithStepHook(hook StepHook) Option {
	return func(p *Pipeline) {
		p.afterStep = hook
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step; a step in progress is bounded
// by its own use of ctx.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps complete.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			report.TimedOut = true
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"fragment_length", len(report.Fragment),
		)

		err := step.Do(ctx, report)
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
		if p.afterStep != nil {
			p.afterStep(step, err)
		}

		if err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			if report.Error == nil {
				report.Error = err
				report.ErrorMessage = err.Error()
			}
			if !p.continueOnError {
				return err
			}
			continue
		}

		p.logger.Debug("step completed", "step", step.Name())
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
