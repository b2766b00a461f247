package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/chronos/internal/model"
	"github.com/nao1215/chronos/internal/reconstruct"
	"github.com/nao1215/chronos/internal/search"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "chronos"

	// DefaultModel is the Gemini model used for reconstruction.
	DefaultModel = reconstruct.DefaultModel

	// DefaultSearchEndpoint is the Google Custom Search JSON API endpoint.
	DefaultSearchEndpoint = search.DefaultGoogleEndpoint

	// DefaultSearchTimeout bounds each search request. The reconstruction
	// call has no timeout of its own.
	DefaultSearchTimeout = search.DefaultTimeout

	// DefaultResultsPerQuery is how many search results are requested per
	// query.
	DefaultResultsPerQuery = search.DefaultResultsPerQuery

	// DefaultResultThreshold stops issuing further queries once this many
	// results have been accumulated.
	DefaultResultThreshold = search.DefaultResultThreshold
)

// Config holds all configuration options for chronos.
// It is built once at start-up from defaults, the settings file, flags and
// the environment, and then passed to the components that need it.
type Config struct {
	// Fragment is the text to reconstruct.
	Fragment string

	// Credentials are the service credentials read from the environment.
	Credentials Credentials

	// Model is the Gemini model name.
	Model string

	// SearchEndpoint is the search API URL.
	SearchEndpoint string

	// SearchTimeout bounds each search request.
	SearchTimeout time.Duration

	// ResultsPerQuery is the number of results requested per search query.
	ResultsPerQuery int

	// ResultThreshold is the accumulated result count that stops further
	// search queries.
	ResultThreshold int

	// ConfigFilePath is the settings file path given with --config.
	// When empty the file is searched for, see FindConfigFile.
	ConfigFilePath string

	// MarkdownReport selects Markdown output instead of plain text.
	MarkdownReport bool

	// ReportFile, when set, receives a copy of the report.
	// Directories are created automatically.
	ReportFile string

	// Bucket forces the query bucket by name. Empty means the fragment is
	// classified automatically.
	Bucket string

	// LogJSON switches log output on stderr to JSON.
	LogJSON bool

	// NoColor disables colored progress output.
	NoColor bool

	// Verbose enables debug logging on stderr.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Model:           DefaultModel,
		SearchEndpoint:  DefaultSearchEndpoint,
		SearchTimeout:   DefaultSearchTimeout,
		ResultsPerQuery: DefaultResultsPerQuery,
		ResultThreshold: DefaultResultThreshold,
	}
}

// XDGConfigDir returns the XDG config directory for chronos.
// On Linux: ~/.config/chronos
// On macOS: ~/Library/Application Support/chronos
// On Windows: %APPDATA%\chronos
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors in
// errors.go. Missing credentials are not a validation error: each one
// degrades into a documented fallback instead.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Fragment) == "" {
		return ErrEmptyFragment
	}

	if strings.TrimSpace(c.Model) == "" {
		return ErrEmptyModel
	}

	if c.SearchTimeout <= 0 {
		return ErrInvalidSearchTimeout
	}

	if c.ResultsPerQuery <= 0 {
		return ErrInvalidResultsPerQuery
	}

	if c.ResultThreshold <= 0 {
		return ErrInvalidResultThreshold
	}

	if c.Bucket != "" {
		if _, ok := model.ParseBucket(c.Bucket); !ok {
			return ErrInvalidBucket
		}
	}

	return nil
}
