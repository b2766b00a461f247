package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/chronos/internal/model"
)

const (
	// DefaultGoogleEndpoint is the Google Custom Search JSON API endpoint.
	DefaultGoogleEndpoint = "https://www.googleapis.com/customsearch/v1"

	// DefaultTimeout bounds each search request.
	DefaultTimeout = 10 * time.Second

	// PlaceholderAPIKey is the API key value shipped in example
	// configuration files. It is treated as not configured.
	PlaceholderAPIKey = "your_google_search_api_key_here"

	// PlaceholderEngineID is the engine ID value shipped in example
	// configuration files. It is treated as not configured.
	PlaceholderEngineID = "your_search_engine_id_here"
)

// Defaults used when an API item lacks a field.
const (
	defaultTitle   = "No title"
	defaultLink    = "#"
	defaultSnippet = "No description available"
)

// Provider is a live web-search backend.
type Provider interface {
	// Search returns at most limit results for query.
	Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error)

	// Name identifies the provider in progress lines and logs.
	Name() string
}

// CredentialChecker is implemented by providers that can tell, without any
// network activity, whether they are configured well enough to be called.
type CredentialChecker interface {
	CheckCredentials() error
}

// GoogleProvider queries the Google Custom Search JSON API.
type GoogleProvider struct {
	apiKey   string
	engineID string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// GoogleOption configures a GoogleProvider.
type GoogleOption func(*GoogleProvider)

// WithEndpoint overrides the API endpoint. Tests point this at an
// httptest server.
func WithEndpoint(endpoint string) GoogleOption {
	return func(p *GoogleProvider) {
		if strings.TrimSpace(endpoint) != "" {
			p.endpoint = endpoint
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) GoogleOption {
	return func(p *GoogleProvider) {
		if timeout > 0 {
			p.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) GoogleOption {
	return func(p *GoogleProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithGoogleLogger sets the logger.
func WithGoogleLogger(logger *slog.Logger) GoogleOption {
	return func(p *GoogleProvider) {
		p.logger = logger
	}
}

// NewGoogleProvider creates a GoogleProvider.
// Missing credentials are not an error here; they are reported by
// CheckCredentials and Search so the caller can fall back per query.
func NewGoogleProvider(apiKey, engineID string, opts ...GoogleOption) *GoogleProvider {
	p := &GoogleProvider{
		apiKey:   strings.TrimSpace(apiKey),
		engineID: strings.TrimSpace(engineID),
		endpoint: DefaultGoogleEndpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name implements Provider.
func (p *GoogleProvider) Name() string {
	return "Google"
}

// CheckCredentials reports ErrMissingAPIKey or ErrMissingEngineID when a
// credential is empty or a placeholder.
func (p *GoogleProvider) CheckCredentials() error {
	if p.apiKey == "" || p.apiKey == PlaceholderAPIKey {
		return ErrMissingAPIKey
	}
	if p.engineID == "" || p.engineID == PlaceholderEngineID {
		return ErrMissingEngineID
	}
	return nil
}

type googleResponse struct {
	// Items is nil when the field is absent and empty when the API
	// explicitly returned no items.
	Items []googleItem `json:"items"`
}

type googleItem struct {
	Title       string `json:"title"`
	HTMLTitle   string `json:"htmlTitle"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	HTMLSnippet string `json:"htmlSnippet"`
}

// Search implements Provider.
func (p *GoogleProvider) Search(ctx context.Context, query string, limit int) ([]model.SearchResult, error) {
	if err := p.CheckCredentials(); err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse search endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", p.apiKey)
	q.Set("cx", p.engineID)
	q.Set("q", query)
	if limit > 0 {
		q.Set("num", strconv.Itoa(limit))
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// The logger masks the key and cx parameters.
	p.logger.Debug("sending search request", "url", endpoint.String(), "limit", limit)

	resp, err := p.client.Do(req)
	if err != nil {
		// The request URL carries the API key; keep it out of the message.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var decoded googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if decoded.Items == nil {
		return nil, ErrNoResults
	}

	items := decoded.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	results := make([]model.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, model.SearchResult{
			Title:   firstNonEmpty(item.Title, item.HTMLTitle, defaultTitle),
			Link:    firstNonEmpty(item.Link, "", defaultLink),
			Snippet: firstNonEmpty(item.Snippet, item.HTMLSnippet, defaultSnippet),
		})
	}

	p.logger.Debug("search request completed", "query", query, "results", len(results))

	return results, nil
}
