package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/chronos/internal/model"
	"github.com/nao1215/chronos/internal/progress"
)

const (
	// DefaultResultsPerQuery is how many results are requested per query.
	DefaultResultsPerQuery = 2

	// DefaultResultThreshold stops issuing further queries once this many
	// results (before deduplication) have been accumulated.
	DefaultResultThreshold = 4
)

// Outcome is the result of a single query.
type Outcome struct {
	// Query is the query that was searched.
	Query string

	// Results are the live results, or the fallback set.
	Results []model.SearchResult

	// Fallback is true when Results came from the fallback table.
	Fallback bool

	// Err is the provider error that caused the fallback, if any.
	Err error
}

// Collection is the merged result of a whole query plan.
type Collection struct {
	// Results are unique by link, in first-seen order.
	Results []model.SearchResult

	// Queried is the number of queries that were actually issued.
	Queried int

	// UsedFallback is true when any query was answered from the fallback
	// table.
	UsedFallback bool
}

// Client runs queries against a Provider and never fails: whenever the
// provider cannot answer, the fallback table is used instead.
type Client struct {
	provider        Provider
	notifier        progress.Notifier
	logger          *slog.Logger
	resultsPerQuery int
	resultThreshold int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithNotifier sets where progress lines go. The default prints nothing.
func WithNotifier(n progress.Notifier) ClientOption {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithResultsPerQuery sets how many results are requested per query.
func WithResultsPerQuery(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.resultsPerQuery = n
		}
	}
}

// WithResultThreshold sets the accumulated-result count that stops further
// queries.
func WithResultThreshold(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.resultThreshold = n
		}
	}
}

// NewClient creates a Client. A nil provider is allowed and means every
// query is answered from the fallback table.
func NewClient(provider Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider:        provider,
		notifier:        progress.Discard,
		logger:          slog.Default(),
		resultsPerQuery: DefaultResultsPerQuery,
		resultThreshold: DefaultResultThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search answers one query. Credentials are checked before any network
// activity; every provider failure is replaced by Fallback(query).
func (c *Client) Search(ctx context.Context, query string) Outcome {
	if c.provider == nil {
		c.notifier.Warnf("No search provider configured, using enhanced fallback sources")
		return c.fallback(query, nil)
	}

	if checker, ok := c.provider.(CredentialChecker); ok {
		if err := checker.CheckCredentials(); err != nil {
			c.warnCredentials(err)
			return c.fallback(query, err)
		}
	}

	c.notifier.Infof("🔍 Searching %s for: '%s'", c.provider.Name(), query)

	results, err := c.provider.Search(ctx, query, c.resultsPerQuery)
	if err != nil {
		c.reportError(err)
		return c.fallback(query, err)
	}

	c.notifier.Successf("Found %d results", len(results))
	return Outcome{Query: query, Results: results}
}

// Collect runs plan in order. It requests resultsPerQuery results per query
// and stops once resultThreshold results have been accumulated or ctx is
// done. The accumulated results are deduplicated by link.
func (c *Client) Collect(ctx context.Context, plan model.QueryPlan) Collection {
	var (
		all          []model.SearchResult
		queried      int
		usedFallback bool
	)

	for _, query := range plan.Queries {
		if ctx.Err() != nil {
			c.logger.Warn("search cancelled", "queried", queried, "error", ctx.Err())
			break
		}

		outcome := c.Search(ctx, query)
		queried++
		all = append(all, outcome.Results...)
		if outcome.Fallback {
			usedFallback = true
		}

		if len(all) >= c.resultThreshold {
			break
		}
	}

	return Collection{
		Results:      model.DedupeByLink(all),
		Queried:      queried,
		UsedFallback: usedFallback,
	}
}

// fallback builds a fallback Outcome and logs the cause.
func (c *Client) fallback(query string, cause error) Outcome {
	c.logger.Debug("using fallback sources", "query", query, "cause", cause)
	return Outcome{
		Query:    query,
		Results:  Fallback(query),
		Fallback: true,
		Err:      cause,
	}
}

// warnCredentials prints the message for a missing credential.
func (c *Client) warnCredentials(err error) {
	switch {
	case errors.Is(err, ErrMissingEngineID):
		c.notifier.Warnf("%s Search Engine ID not configured, using enhanced fallback sources", c.provider.Name())
	default:
		c.notifier.Warnf("%s Search API key not configured, using enhanced fallback sources", c.provider.Name())
	}
}

// reportError prints the message for a failed provider call.
func (c *Client) reportError(err error) {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		c.notifier.Errorf("Search API returned status %d", statusErr.StatusCode)
	case errors.Is(err, ErrNoResults):
		c.notifier.Warnf("No search results found in API response")
	case errors.Is(err, ErrRequestFailed):
		c.notifier.Errorf("Search API error: %v", err)
	default:
		c.notifier.Errorf("Unexpected search error: %v", err)
	}
	c.logger.Warn("search failed", "error", err)
}
