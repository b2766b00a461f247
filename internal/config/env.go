package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for the service credentials.
const (
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvSearchAPIKey   = "GOOGLE_SEARCH_API_KEY"
	EnvSearchEngineID = "GOOGLE_SEARCH_ENGINE_ID"
)

// DefaultEnvFile is the dotenv file loaded from the working directory.
const DefaultEnvFile = ".env"

// Credentials are the secrets chronos needs to reach external services.
// Any of them may be empty; the consumer degrades to its fallback.
type Credentials struct {
	// GeminiAPIKey authenticates reconstruction requests.
	GeminiAPIKey string

	// SearchAPIKey authenticates search requests.
	SearchAPIKey string

	// SearchEngineID selects the custom search engine.
	SearchEngineID string
}

// HasGemini reports whether a Gemini API key is present.
func (c Credentials) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// LoadEnv loads variables from the given dotenv files into the process
// environment. Variables that are already set are never overwritten.
// Missing files are ignored; a malformed file is an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// CredentialsFromEnv reads credentials with the given lookup function.
// Passing nil uses os.Getenv. Values are trimmed of surrounding whitespace.
func CredentialsFromEnv(getenv func(string) string) Credentials {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Credentials{
		GeminiAPIKey:   strings.TrimSpace(getenv(EnvGeminiAPIKey)),
		SearchAPIKey:   strings.TrimSpace(getenv(EnvSearchAPIKey)),
		SearchEngineID: strings.TrimSpace(getenv(EnvSearchEngineID)),
	}
}
