// Package log builds the slog loggers used by chronos.
//
// Every logger returned by this package wraps its output handler in a
// SecureHandler, which masks API keys and other credentials before they
// reach the writer. Masking applies at every level, including debug, so
// verbose logs can be shared safely.
//
// Masked values include:
//   - attributes whose key names a credential (api_key, gemini_api_key, cx, ...)
//   - Google API keys and bearer tokens detected by value
//   - the key and cx query parameters of logged URLs
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("search request", "url", endpoint+"?key="+apiKey)
//	// url=https://www.googleapis.com/customsearch/v1?key=***REDACTED***
package log
