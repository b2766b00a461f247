package model

import "strings"

// Reconstruction is the outcome of asking the language model to rebuild a
// fragment. Exactly one of Text or Err is meaningful: a reconstruction
// either succeeded with prose or failed with a cause.
type Reconstruction struct {
	// Text is the reconstructed prose, trimmed of surrounding whitespace.
	Text string

	// Err is the failure cause. It is nil on success.
	Err error
}

// NewReconstruction returns a successful reconstruction.
func NewReconstruction(text string) Reconstruction {
	return Reconstruction{Text: strings.TrimSpace(text)}
}

// FailedReconstruction returns a failed reconstruction carrying err.
func FailedReconstruction(err error) Reconstruction {
	return Reconstruction{Err: err}
}

// Succeeded reports whether the reconstruction produced text.
func (r Reconstruction) Succeeded() bool {
	return r.Err == nil
}

// Failed reports whether the reconstruction carries an error.
func (r Reconstruction) Failed() bool {
	return r.Err != nil
}

// Display returns the text shown to the user: the prose on success, or
// "Error: <cause>" on failure.
func (r Reconstruction) Display() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Text
}
