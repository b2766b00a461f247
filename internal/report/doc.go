// Package report renders a chronos run for people.
//
// SimpleWriter produces the banner-delimited text block printed to the
// terminal. MarkdownWriter produces the same content as GitHub Flavored
// Markdown for sharing. Neither writer validates the report: a failed
// reconstruction is shown exactly as model.Reconstruction.Display returns it.
package report
