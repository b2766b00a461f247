package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/chronos/internal/model"
)

// BannerWidth is the width of the "=" banners around the text report.
const BannerWidth = 60

// sectionWidth is the width of the "-" rules between sections.
const sectionWidth = 60

// SimpleWriter outputs the human-readable text report.
// Plain ASCII framing keeps it readable when piped to a file.
type SimpleWriter struct {
	baseWriter

	// showPlan adds the selected bucket and queries to the header.
	showPlan bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowPlan includes the query plan in the report header.
func WithShowPlan(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showPlan = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	return io.WriteString(w.output, w.render(report))
}

// Render returns the text report for r with default options.
func Render(r *model.Report) string {
	return NewSimpleWriter(io.Discard).render(r)
}

func (w *SimpleWriter) render(report *model.Report) string {
	var sb strings.Builder

	banner := strings.Repeat("=", BannerWidth)
	sb.WriteString(banner)
	sb.WriteString("\n")
	sb.WriteString("          PROJECT CHRONOS: RECONSTRUCTION REPORT\n")
	sb.WriteString(banner)
	sb.WriteString("\n\n")

	w.writeHeader(&sb, report)
	w.writeSection(&sb, "ORIGINAL FRAGMENT", report.Fragment)
	w.writeSection(&sb, "RECONSTRUCTION", report.Reconstruction.Display())
	w.writeSources(&sb, report)

	sb.WriteString(banner)
	sb.WriteString("\n")
	return sb.String()
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "Generated: %s\n", report.GeneratedAt.Format(timestampLayout))
	if w.showPlan && report.Plan.Len() > 0 {
		fmt.Fprintf(sb, "Bucket:    %s (%s)\n", report.Plan.Bucket, report.Plan.Bucket.Description())
		for i, query := range report.Plan.Queries {
			fmt.Fprintf(sb, "Query %d:   %s\n", i+1, query)
		}
	}
	if report.TimedOut {
		sb.WriteString("Status:    CANCELLED (partial results)\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title, body string) {
	writeRule(sb, title)
	sb.WriteString(body)
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSources(sb *strings.Builder, report *model.Report) {
	writeRule(sb, "CONTEXTUAL SOURCES")

	if report.SourceCount() == 0 {
		sb.WriteString("No contextual sources found.\n\n")
		return
	}

	for i, source := range report.Sources {
		fmt.Fprintf(sb, "%d. %s\n", i+1, source.Title)
		fmt.Fprintf(sb, "   %s\n", source.Link)
		fmt.Fprintf(sb, "   %s\n\n", source.Snippet)
	}
	if report.UsedFallback {
		sb.WriteString("Note: live search was unavailable for some queries; offline reference sources were used.\n\n")
	}
}

func writeRule(sb *strings.Builder, title string) {
	rule := strings.Repeat("-", sectionWidth)
	sb.WriteString(rule)
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(rule)
	sb.WriteString("\n")
}
