package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/chronos/internal/config"
	"github.com/nao1215/chronos/internal/model"
	"github.com/nao1215/chronos/internal/pipeline"
	"github.com/nao1215/chronos/internal/progress"
	"github.com/nao1215/chronos/internal/reconstruct"
	"github.com/nao1215/chronos/internal/search"
)

type fakeReconstructor struct {
	result model.Reconstruction
}

func (f fakeReconstructor) Reconstruct(context.Context, string) model.Reconstruction {
	return f.result
}

func TestNewReconstructCmd(t *testing.T) {
	t.Parallel()

	cmd := NewReconstructCmd()

	t.Run("has use and alias", func(t *testing.T) {
		t.Parallel()
		if cmd.Name() != "reconstruct" {
			t.Errorf("expected name 'reconstruct', got %q", cmd.Name())
		}
		if len(cmd.Aliases) != 1 || cmd.Aliases[0] != "dig" {
			t.Errorf("expected alias 'dig', got %v", cmd.Aliases)
		}
	})

	t.Run("has flags with defaults", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{name: "config", shorthand: "c", defValue: ""},
			{name: "model", defValue: config.DefaultModel},
			{name: "search-timeout", defValue: config.DefaultSearchTimeout.String()},
			{name: "markdown", shorthand: "m", defValue: "false"},
			{name: "output", shorthand: "o", defValue: ""},
			{name: "show-plan", defValue: "false"},
			{name: "bucket", defValue: ""},
			{name: "log-json", defValue: "false"},
			{name: "no-color", defValue: "false"},
		}
		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("%s: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("%s: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{}); err == nil {
			t.Error("expected error for no arguments")
		}
		if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
			t.Error("expected error for two arguments")
		}
		if err := cmd.Args(cmd, []string{"brb"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	noEnv := func(string) string { return "" }

	t.Run("settings file then flags", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "model: from-file\nsearch:\n  timeout: 3s\n  result_threshold: 6\n")

		cmd := NewReconstructCmd()
		if err := cmd.Flags().Parse([]string{"-c", path, "--model", "from-flag", "-m", "-o", "out.md", "--no-color", "--bucket", "general", "--log-json"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"brb"}, noEnv)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Fragment != "brb" {
			t.Errorf("Fragment = %q", cfg.Fragment)
		}
		if cfg.Model != "from-flag" {
			t.Errorf("Model = %q, want flag value", cfg.Model)
		}
		if cfg.SearchTimeout != 3*time.Second {
			t.Errorf("SearchTimeout = %v, want file value", cfg.SearchTimeout)
		}
		if cfg.ResultThreshold != 6 {
			t.Errorf("ResultThreshold = %d, want file value", cfg.ResultThreshold)
		}
		if cfg.ResultsPerQuery != config.DefaultResultsPerQuery {
			t.Errorf("ResultsPerQuery = %d, want default", cfg.ResultsPerQuery)
		}
		if cfg.Bucket != "general" || !cfg.LogJSON {
			t.Errorf("bucket and log flags not applied: %+v", cfg)
		}
		if !cfg.MarkdownReport || cfg.ReportFile != "out.md" || !cfg.NoColor {
			t.Errorf("output flags not applied: %+v", cfg)
		}
	})

	t.Run("unchanged flags keep file values", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "model: from-file\n")
		cmd := NewReconstructCmd()
		if err := cmd.Flags().Parse([]string{"-c", path}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"brb"}, noEnv)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Model != "from-file" {
			t.Errorf("Model = %q, want from-file", cfg.Model)
		}
	})

	t.Run("explicit missing settings file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewReconstructCmd()
		if err := cmd.Flags().Parse([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
			t.Fatal(err)
		}
		_, err := buildConfig(cmd, []string{"brb"}, noEnv)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("credentials come from the environment", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "model: m\n")
		cmd := NewReconstructCmd()
		if err := cmd.Flags().Parse([]string{"-c", path}); err != nil {
			t.Fatal(err)
		}
		env := map[string]string{
			config.EnvGeminiAPIKey:   "g",
			config.EnvSearchAPIKey:   "s",
			config.EnvSearchEngineID: "e",
		}
		cfg, err := buildConfig(cmd, []string{"brb"}, func(k string) string { return env[k] })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := config.Credentials{GeminiAPIKey: "g", SearchAPIKey: "s", SearchEngineID: "e"}
		if cfg.Credentials != want {
			t.Errorf("Credentials = %+v, want %+v", cfg.Credentials, want)
		}
	})
}

func newTestDeps(fragment string, rec model.Reconstruction, out *bytes.Buffer) runDeps {
	cfg := config.NewConfig()
	cfg.Fragment = fragment
	return runDeps{
		cfg:           cfg,
		reconstructor: fakeReconstructor{result: rec},
		provider:      search.NewGoogleProvider("", ""),
		printer:       progress.NewPrinter(out, progress.WithColor(false)),
		logger:        slog.New(slog.DiscardHandler),
		out:           out,
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := config.NewConfig()
	cfg.LogJSON = true
	newLogger(&buf, cfg).Warn("search failed", "key", "secret-value")

	output := buf.String()
	if !strings.HasPrefix(output, "{") {
		t.Errorf("expected JSON log line, got %q", output)
	}
	if strings.Contains(output, "secret-value") {
		t.Errorf("expected key to be masked, got %q", output)
	}
}

func TestRunReconstruct(t *testing.T) {
	t.Parallel()

	t.Run("prints progress and report", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := newTestDeps("smh he ghosted after top 8",
			model.NewReconstruction("Shaking my head, he stopped replying after the Top 8."), &out)

		if err := runReconstruct(context.Background(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		ordered := []string{
			"📜 Original fragment: 'smh he ghosted after top 8'",
			"🔄 Step 1: Reconstructing text using AI...",
			"✅ Reconstructed: Shaking my head",
			"🔍 Step 2: Searching for contextual information...",
			"Google Search API key not configured, using enhanced fallback sources",
			"✅ Found 4 contextual sources",
			"📊 Step 3: Generating comprehensive report...",
			"ORIGINAL FRAGMENT",
			"CONTEXTUAL SOURCES",
			"4. SMH - Shaking My Head",
		}
		last := -1
		for _, want := range ordered {
			idx := strings.Index(output, want)
			if idx < 0 {
				t.Fatalf("expected %q in output:\n%s", want, output)
			}
			if idx < last {
				t.Errorf("%q out of order", want)
			}
			last = idx
		}
	})

	t.Run("reconstruction failure stops before search", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := newTestDeps("smh he ghosted after top 8",
			model.FailedReconstruction(reconstruct.ErrMissingAPIKey), &out)

		err := runReconstruct(context.Background(), deps)
		if !errors.Is(err, pipeline.ErrReconstructionFailed) {
			t.Fatalf("expected ErrReconstructionFailed, got %v", err)
		}
		var shown *reportedError
		if !errors.As(err, &shown) {
			t.Error("expected the error to be marked as reported")
		}

		output := out.String()
		if !strings.Contains(output, "❌ Reconstruction failed: Error: GEMINI_API_KEY not found") {
			t.Errorf("expected failure line:\n%s", output)
		}
		if strings.Contains(output, "Step 2") || strings.Contains(output, "CONTEXTUAL SOURCES") {
			t.Errorf("expected no search and no report:\n%s", output)
		}
	})

	t.Run("forced bucket overrides classification", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := newTestDeps("the ancient scroll reads", model.NewReconstruction("The scroll."), &out)
		deps.cfg.Bucket = "slang"
		deps.showPlan = true

		if err := runReconstruct(context.Background(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := out.String()
		if !strings.Contains(output, `"the ancient scroll reads" internet slang meaning`) {
			t.Errorf("expected slang query:\n%s", output)
		}
		if !strings.Contains(output, "Bucket:    slang (internet slang)") {
			t.Errorf("expected forced bucket in report:\n%s", output)
		}
	})

	t.Run("writes markdown copy to file", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		deps := newTestDeps("the ancient scroll reads", model.NewReconstruction("The ancient scroll reads as follows."), &out)
		deps.cfg.MarkdownReport = true
		deps.cfg.ReportFile = filepath.Join(t.TempDir(), "reports", "scroll.md")

		if err := runReconstruct(context.Background(), deps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(deps.cfg.ReportFile)
		if err != nil {
			t.Fatalf("expected report file: %v", err)
		}
		if !strings.Contains(string(content), "# Project Chronos Report") {
			t.Errorf("expected markdown report in file:\n%s", content)
		}
		if !strings.Contains(string(content), "Textual Criticism - Wikipedia") {
			t.Errorf("expected historical fallback source in file:\n%s", content)
		}
		if !strings.Contains(out.String(), "# Project Chronos Report") {
			t.Error("expected markdown report on stdout too")
		}

		info, err := os.Stat(deps.cfg.ReportFile)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

// TestReconstructCommand runs the command end to end. It changes the
// process environment, so it does not run in parallel.
func TestReconstructCommand(t *testing.T) {
	t.Setenv(config.EnvGeminiAPIKey, "")
	t.Setenv(config.EnvSearchAPIKey, "")
	t.Setenv(config.EnvSearchEngineID, "")

	settings := writeSettings(t, "model: gemini-2.0-flash\n")

	t.Run("empty fragment halts before reconstruction", func(t *testing.T) {
		var out, errOut bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"reconstruct", "--no-color", "-c", settings, "   "})

		err := cmd.Execute()
		if !errors.Is(err, config.ErrEmptyFragment) {
			t.Fatalf("expected ErrEmptyFragment, got %v", err)
		}
		output := out.String()
		if !strings.Contains(output, "❌ Please provide text to reconstruct") {
			t.Errorf("expected input error line:\n%s", output)
		}
		if strings.Contains(output, "Step 1") {
			t.Errorf("expected no pipeline stage to run:\n%s", output)
		}
	})

	t.Run("missing gemini key fails without a report", func(t *testing.T) {
		var out, errOut bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"dig", "--no-color", "-c", settings, "smh he ghosted after top 8"})

		err := cmd.Execute()
		if !errors.Is(err, reconstruct.ErrMissingAPIKey) {
			t.Fatalf("expected ErrMissingAPIKey, got %v", err)
		}
		output := out.String()
		if !strings.Contains(output, "🔍 Project Chronos - AI Archeologist") {
			t.Errorf("expected banner:\n%s", output)
		}
		if !strings.Contains(output, "Reconstruction failed: Error: GEMINI_API_KEY not found") {
			t.Errorf("expected reconstruction failure:\n%s", output)
		}
		if strings.Contains(output, "Searching") {
			t.Errorf("expected no search:\n%s", output)
		}
	})
}
