package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/chronos/internal/model"
)

// MarkdownWriter outputs reports as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeFragment(md, report)
	w.writeReconstruction(md, report)
	w.writeSources(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Project Chronos Report")
	md.PlainText("")

	rows := [][]string{
		{"Generated", report.GeneratedAt.Format(timestampLayout)},
		{"Status", statusText(report)},
		{"Sources", strconv.Itoa(report.SourceCount())},
	}
	if report.Plan.Len() > 0 {
		rows = append(rows, []string{"Bucket", bucketLabel(report.Plan.Bucket)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFragment(md *markdown.Markdown, report *model.Report) {
	md.H2("Original Fragment")
	md.PlainText("")
	md.Blockquote(report.Fragment)
	md.PlainText("")
}

func (w *MarkdownWriter) writeReconstruction(md *markdown.Markdown, report *model.Report) {
	md.H2("Reconstruction")
	md.PlainText("")
	if report.Reconstruction.Failed() {
		md.Cautionf("%s", report.Reconstruction.Display())
	} else {
		md.PlainText(report.Reconstruction.Display())
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSources(md *markdown.Markdown, report *model.Report) {
	md.H2("Contextual Sources")
	md.PlainText("")

	if report.SourceCount() == 0 {
		md.PlainText("No contextual sources found.")
		md.PlainText("")
		return
	}

	items := make([]string, 0, len(report.Sources))
	for _, source := range report.Sources {
		items = append(items, markdown.Link(source.Title, source.Link)+": "+source.Snippet)
	}
	md.OrderedList(items...)
	md.PlainText("")

	if report.UsedFallback {
		md.Note("Live search was unavailable for some queries; offline reference sources were used.")
		md.PlainText("")
	}

	if report.Plan.Len() > 0 {
		md.Details("Search queries", strings.Join(report.Plan.Queries, "\n"))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by Project Chronos: AI Archeologist*")
}

// bucketLabel returns e.g. "Slang (internet slang)".
func bucketLabel(b model.Bucket) string {
	return cases.Title(language.English).String(b.String()) + " (" + b.Description() + ")"
}

func statusText(report *model.Report) string {
	switch {
	case report.TimedOut:
		return "⚠️ Cancelled (partial results)"
	case report.Reconstruction.Failed():
		return "❌ Reconstruction failed"
	default:
		return "✅ Complete"
	}
}
