// Package main provides the entry point for the chronos CLI.
//
// chronos reconstructs a fragment of informal or archaic text with a
// generative language model, then gathers contextual sources from web
// search and prints a report.
//
// Usage:
//
//	chronos reconstruct "brb, gotta afk"
//	chronos reconstruct --markdown -o report.md "the ancient scroll reads"
//
// See --help for all available options.
package main

func main() {
	Execute()
}
