package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/chronos/internal/model"
)

var discardLogger = slog.New(slog.DiscardHandler)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, report *model.Report) error
	callCount int
}

func (m *mockStep) Do(ctx context.Context, report *model.Report) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, report)
	}
	return nil
}

func (m *mockStep) Name() string {
	return m.name
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.continueOnError {
			t.Error("expected continueOnError to default to false")
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "a"})
	p.AddSteps(&mockStep{name: "b"}, &mockStep{name: "c"})

	if diff := cmp.Diff([]string{"a", "b", "c"}, p.StepNames()); diff != "" {
		t.Errorf("StepNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order and records them", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *model.Report) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New(WithLogger(discardLogger))
		p.AddSteps(record("first"), record("second"))

		report := model.NewReport("text")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"first", "second"}, report.PerformedSteps); diff != "" {
			t.Errorf("PerformedSteps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		failing := &mockStep{name: "failing", doFunc: func(context.Context, *model.Report) error { return wantErr }}
		after := &mockStep{name: "after"}

		p := New(WithLogger(discardLogger))
		p.AddSteps(failing, after)

		report := model.NewReport("text")
		err := p.Execute(context.Background(), report)
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected %v, got %v", wantErr, err)
		}
		if after.callCount != 0 {
			t.Error("expected later step to be skipped")
		}
		if !errors.Is(report.Error, wantErr) || report.ErrorMessage != "boom" {
			t.Errorf("expected error recorded in report, got %v / %q", report.Error, report.ErrorMessage)
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "failing", doFunc: func(context.Context, *model.Report) error { return errors.New("first") }}
		failingAgain := &mockStep{name: "again", doFunc: func(context.Context, *model.Report) error { return errors.New("second") }}
		after := &mockStep{name: "after"}

		p := New(WithLogger(discardLogger), WithContinueOnError(true))
		p.AddSteps(failing, failingAgain, after)

		report := model.NewReport("text")
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if after.callCount != 1 {
			t.Error("expected later step to run")
		}
		if report.ErrorMessage != "first" {
			t.Errorf("expected first error to be kept, got %q", report.ErrorMessage)
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := &mockStep{name: "first", doFunc: func(context.Context, *model.Report) error {
			cancel()
			return nil
		}}
		second := &mockStep{name: "second"}

		p := New(WithLogger(discardLogger))
		p.AddSteps(first, second)

		report := model.NewReport("text")
		err := p.Execute(ctx, report)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.callCount != 0 {
			t.Error("expected second step to be skipped")
		}
		if !report.TimedOut {
			t.Error("expected TimedOut to be set")
		}
	})

	t.Run("step hook sees every executed step", func(t *testing.T) {
		t.Parallel()

		var seen []string
		hook := func(step Step, err error) {
			name := step.Name()
			if err != nil {
				name += ":err"
			}
			seen = append(seen, name)
		}

		p := New(WithLogger(discardLogger), WithStepHook(hook))
		p.AddSteps(
			&mockStep{name: "ok"},
			&mockStep{name: "bad", doFunc: func(context.Context, *model.Report) error { return errors.New("x") }},
			&mockStep{name: "skipped"},
		)

		_ = p.Execute(context.Background(), model.NewReport("text"))
		if diff := cmp.Diff([]string{"ok", "bad:err"}, seen); diff != "" {
			t.Errorf("hook calls mismatch (-want +got):\n%s", diff)
		}
	})
}
