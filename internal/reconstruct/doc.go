// Package reconstruct asks a generative language model to rebuild a text
// fragment into readable prose with its cultural or historical context
// woven in.
//
// The result is always a model.Reconstruction value: either the
// reconstructed text or the reason reconstruction failed. Callers branch on
// Reconstruction.Failed instead of inspecting the text.
package reconstruct
