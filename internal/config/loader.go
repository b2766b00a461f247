package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the settings file name looked up in the current
// and home directories.
const DefaultConfigFile = ".chronos.yaml"

// XDGConfigFile is the settings file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the YAML settings file.
// Every field is optional; zero values leave the corresponding Config
// default untouched.
type File struct {
	// Model overrides the Gemini model name.
	Model string `yaml:"model"`

	// Search holds search provider settings.
	Search SearchSettings `yaml:"search"`
}

// SearchSettings holds the search section of the settings file.
type SearchSettings struct {
	// Endpoint overrides the search API URL.
	Endpoint string `yaml:"endpoint"`

	// Timeout is a Go duration string such as "10s".
	Timeout time.Duration `yaml:"timeout"`

	// ResultsPerQuery is the number of results requested per query.
	ResultsPerQuery int `yaml:"results_per_query"`

	// ResultThreshold stops further queries once reached.
	ResultThreshold int `yaml:"result_threshold"`
}

// Apply copies the non-zero settings of f onto cfg.
// Values that flags have already changed should be applied after this call.
func (f *File) Apply(cfg *Config) {
	if f == nil || cfg == nil {
		return
	}
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.Search.Endpoint != "" {
		cfg.SearchEndpoint = f.Search.Endpoint
	}
	if f.Search.Timeout > 0 {
		cfg.SearchTimeout = f.Search.Timeout
	}
	if f.Search.ResultsPerQuery > 0 {
		cfg.ResultsPerQuery = f.Search.ResultsPerQuery
	}
	if f.Search.ResultThreshold > 0 {
		cfg.ResultThreshold = f.Search.ResultThreshold
	}
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers decide whether that is fatal based on whether the path was
// explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the settings file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .chronos.yaml in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .chronos.yaml in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
