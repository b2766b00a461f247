// Package pipeline runs the stages of a chronos run in sequence.
//
// A run is reconstruct, plan, then search. Each stage is a Step that
// receives the shared model.Report and fills in its part. A failed
// reconstruction stops the pipeline before any search request is made;
// search never fails because unavailable search degrades to the fallback
// table. Report rendering is left to the caller.
package pipeline
