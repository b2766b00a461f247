package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeys are attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	"authorization":     true,
	"x-goog-api-key":    true,
	"x-api-key":         true,
	"key":               true,
	"api_key":           true,
	"apikey":            true,
	"api-key":           true,
	"gemini_api_key":    true,
	"search_api_key":    true,
	"cx":                true,
	"engine_id":         true,
	"search_engine_id":  true,
	"access_token":      true,
	"refresh_token":     true,
	"password":          true,
	"credentials":       true,
	"google_search_key": true,
}

// sensitiveKeywords mask any key that contains them.
// The bare word "key" is excluded; it appears in too many harmless names.
var sensitiveKeywords = []string{
	"secret", "token", "password", "credential", "api_key", "apikey",
}

// sensitivePatterns mask string values regardless of their key.
var sensitivePatterns = []*regexp.Regexp{
	// Google API keys
	regexp.MustCompile(`^AIza[0-9A-Za-z_-]{35}$`),

	// OAuth access tokens issued by Google
	regexp.MustCompile(`^ya29\.[0-9A-Za-z_-]+$`),

	// Bearer tokens
	regexp.MustCompile(`(?i)^bearer\s+.+`),

	// JWT tokens
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
}

// sensitiveQueryParams are URL query parameters masked inside string values.
var sensitiveQueryParams = []string{"key", "cx", "access_token"}

// SecureHandler wraps an slog.Handler and masks sensitive attribute values
// before passing records on. Groups are sanitized recursively.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes sanitized and added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitizedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		value := a.Value.String()
		if isSensitiveValue(value) {
			return slog.String(a.Key, MaskValue)
		}
		if masked, ok := maskURLQuery(value); ok {
			return slog.String(a.Key, masked)
		}
	}
	return a
}

// IsSensitiveKey reports whether values logged under key are masked.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	if sensitiveKeys[keyLower] {
		return true
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(keyLower, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// maskURLQuery masks credential query parameters in an absolute URL.
// It reports false when value is not a URL or carries none of them.
func maskURLQuery(value string) (string, bool) {
	if !strings.Contains(value, "://") || !strings.Contains(value, "?") {
		return "", false
	}
	u, err := url.Parse(value)
	if err != nil || u.RawQuery == "" {
		return "", false
	}

	query := u.Query()
	changed := false
	for _, param := range sensitiveQueryParams {
		if _, ok := query[param]; ok {
			query.Set(param, MaskValue)
			changed = true
		}
	}
	if !changed {
		return "", false
	}
	u.RawQuery = query.Encode()
	// Encode escapes the asterisks of MaskValue.
	return strings.ReplaceAll(u.String(), url.QueryEscape(MaskValue), MaskValue), true
}

// NewSecureLogger returns a text logger writing to w through a SecureHandler.
// verbose selects Debug level; otherwise only warnings and errors are logged.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
