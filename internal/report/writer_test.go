package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/chronos/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.Report {
	report := model.NewReport("brb, gotta afk")
	report.GeneratedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	report.Reconstruction = model.NewReconstruction("Be right back (brb), I have to step away from the keyboard (afk).")
	report.Plan = model.QueryPlan{
		Bucket: model.BucketSlang,
		Queries: []string{
			`"brb, gotta afk" internet slang meaning`,
			"common internet acronyms abbreviations",
			"online chat slang dictionary",
		},
	}
	report.AddSources(
		model.SearchResult{Title: "BRB - Urban Dictionary", Link: "https://www.urbandictionary.com/define.php?term=brb", Snippet: "Be right back."},
		model.SearchResult{Title: "AFK meaning", Link: "https://example.com/afk", Snippet: "Away from keyboard."},
	)
	return report
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every section in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("Write() returned %d, wrote %d bytes", n, buf.Len())
		}

		output := buf.String()
		sections := []string{"RECONSTRUCTION REPORT", "ORIGINAL FRAGMENT", "RECONSTRUCTION\n", "CONTEXTUAL SOURCES"}
		last := -1
		for _, section := range sections {
			idx := strings.Index(output, section)
			if idx < 0 {
				t.Fatalf("expected section %q in output:\n%s", section, output)
			}
			if idx <= last {
				t.Errorf("section %q out of order", section)
			}
			last = idx
		}
	})

	t.Run("enumerates sources with title link and snippet", func(t *testing.T) {
		t.Parallel()

		output := Render(createTestReport())
		for _, want := range []string{
			"1. BRB - Urban Dictionary\n   https://www.urbandictionary.com/define.php?term=brb\n   Be right back.\n",
			"2. AFK meaning\n   https://example.com/afk\n   Away from keyboard.\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})

	t.Run("contains fragment and reconstruction", func(t *testing.T) {
		t.Parallel()

		output := Render(createTestReport())
		if !strings.Contains(output, "brb, gotta afk") {
			t.Error("expected original fragment")
		}
		if !strings.Contains(output, "Be right back (brb)") {
			t.Error("expected reconstruction text")
		}
	})

	t.Run("failed reconstruction is shown verbatim", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Reconstruction = model.FailedReconstruction(errors.New("GEMINI_API_KEY not found"))

		output := Render(report)
		if !strings.Contains(output, "Error: GEMINI_API_KEY not found") {
			t.Errorf("expected error text in output:\n%s", output)
		}
	})

	t.Run("no sources", func(t *testing.T) {
		t.Parallel()

		report := model.NewReport("text")
		output := Render(report)
		if !strings.Contains(output, "No contextual sources found.") {
			t.Errorf("expected empty-sources message:\n%s", output)
		}
	})

	t.Run("fallback note", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.UsedFallback = true
		if !strings.Contains(Render(report), "offline reference sources were used") {
			t.Error("expected fallback note")
		}
		report.UsedFallback = false
		if strings.Contains(Render(report), "offline reference sources were used") {
			t.Error("unexpected fallback note")
		}
	})

	t.Run("plan is shown only when requested", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		if strings.Contains(Render(report), "Bucket:") {
			t.Error("plan should be hidden by default")
		}

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowPlan(true)).Write(report); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		if !strings.Contains(output, "Bucket:    slang (internet slang)") {
			t.Errorf("expected bucket line:\n%s", output)
		}
		if !strings.Contains(output, "Query 3:   online chat slang dictionary") {
			t.Errorf("expected query lines:\n%s", output)
		}
	})

	t.Run("starts and ends with banners", func(t *testing.T) {
		t.Parallel()

		output := Render(createTestReport())
		banner := strings.Repeat("=", BannerWidth)
		if !strings.HasPrefix(output, banner+"\n") {
			t.Error("expected leading banner")
		}
		if !strings.HasSuffix(output, banner+"\n") {
			t.Error("expected trailing banner")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes headings and links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Project Chronos Report",
			"## Original Fragment",
			"## Reconstruction",
			"## Contextual Sources",
			"[BRB - Urban Dictionary](https://www.urbandictionary.com/define.php?term=brb)",
			"Be right back (brb)",
			"internet slang",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in markdown output:\n%s", want, output)
			}
		}
	})

	t.Run("failed reconstruction is marked", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Reconstruction = model.FailedReconstruction(errors.New("GEMINI_API_KEY not found"))

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatal(err)
		}
		output := buf.String()
		if !strings.Contains(output, "Error: GEMINI_API_KEY not found") {
			t.Errorf("expected error text:\n%s", output)
		}
		if !strings.Contains(output, "Reconstruction failed") {
			t.Errorf("expected failed status:\n%s", output)
		}
	})

	t.Run("no sources", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewReport("text")); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No contextual sources found.") {
			t.Errorf("expected empty-sources message:\n%s", buf.String())
		}
	})
}

type failingWriter struct{ err error }

func (f failingWriter) Write(*model.Report) (int, error) { return 0, f.err }

type countingWriter struct{ calls *int }

func (c countingWriter) Write(*model.Report) (int, error) {
	*c.calls++
	return 10, nil
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var first, second bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&first), NewMarkdownWriter(&second))
		n, err := mw.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Len() == 0 || second.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
		if n < first.Len() {
			t.Errorf("expected total bytes >= %d, got %d", first.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("disk full")
		calls := 0
		mw := NewMultiWriter(countingWriter{calls: &calls}, failingWriter{err: wantErr}, countingWriter{calls: &calls})
		n, err := mw.Write(createTestReport())
		if !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call before the error, got %d", calls)
		}
		if n != 10 {
			t.Errorf("expected 10 bytes, got %d", n)
		}
	})
}

func TestBucketLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bucket model.Bucket
		want   string
	}{
		{bucket: model.BucketSlang, want: "Slang (internet slang)"},
		{bucket: model.BucketHistorical, want: "Historical (historical/archaeological text)"},
		{bucket: model.BucketGeneral, want: "General (general text)"},
	}
	for _, tt := range tests {
		if got := bucketLabel(tt.bucket); got != tt.want {
			t.Errorf("bucketLabel(%v) = %q, want %q", tt.bucket, got, tt.want)
		}
	}
}
