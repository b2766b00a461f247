package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// reportedError marks an error whose message has already been shown to the
// user as a progress line. Execute exits non-zero without printing it again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// NewRootCmd creates the root command for chronos.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronos",
		Short: "AI archeologist for fragmented text",
		Long: `chronos (Project Chronos: AI Archeologist) reconstructs fragments of
internet slang or archaic text with Google Gemini and gathers contextual
sources from web search.

Credentials are read from the environment or a .env file:
  GEMINI_API_KEY           Gemini API key (required for reconstruction)
  GOOGLE_SEARCH_API_KEY    Custom Search API key (optional)
  GOOGLE_SEARCH_ENGINE_ID  Custom Search engine ID (optional)

Without search credentials, built-in reference sources are used instead.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewReconstructCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
