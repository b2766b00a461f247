package reconstruct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/nao1215/chronos/internal/model"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

var (
	// ErrMissingAPIKey is returned when no Gemini API key is configured.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY not found")

	// ErrEmptyFragment is returned for an empty or whitespace-only fragment.
	ErrEmptyFragment = errors.New("fragment is empty")

	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// Reconstructor rebuilds a fragment into prose.
type Reconstructor interface {
	Reconstruct(ctx context.Context, fragment string) model.Reconstruction
}

// generator is the subset of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// generatorFactory creates a generator for an API key.
type generatorFactory func(ctx context.Context, apiKey string) (generator, error)

// newGenAIGenerator creates a Gemini API client.
func newGenAIGenerator(ctx context.Context, apiKey string) (generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// GeminiReconstructor reconstructs fragments with a Gemini model.
type GeminiReconstructor struct {
	apiKey       string
	model        string
	logger       *slog.Logger
	newGenerator generatorFactory
}

// Option configures a GeminiReconstructor.
type Option func(*GeminiReconstructor)

// WithModel sets the Gemini model name.
func WithModel(name string) Option {
	return func(r *GeminiReconstructor) {
		if strings.TrimSpace(name) != "" {
			r.model = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *GeminiReconstructor) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// withGeneratorFactory replaces the Gemini client. Used by tests.
func withGeneratorFactory(f generatorFactory) Option {
	return func(r *GeminiReconstructor) {
		r.newGenerator = f
	}
}

// NewGeminiReconstructor creates a GeminiReconstructor.
// An empty apiKey is accepted; Reconstruct then fails with ErrMissingAPIKey
// without any network activity.
func NewGeminiReconstructor(apiKey string, opts ...Option) *GeminiReconstructor {
	r := &GeminiReconstructor{
		apiKey:       strings.TrimSpace(apiKey),
		model:        DefaultModel,
		logger:       slog.Default(),
		newGenerator: newGenAIGenerator,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Model returns the configured model name.
func (r *GeminiReconstructor) Model() string {
	return r.model
}

// Reconstruct implements Reconstructor.
// The call is made once with no retries; it is bounded only by ctx.
func (r *GeminiReconstructor) Reconstruct(ctx context.Context, fragment string) model.Reconstruction {
	if strings.TrimSpace(fragment) == "" {
		return model.FailedReconstruction(ErrEmptyFragment)
	}
	if r.apiKey == "" {
		return model.FailedReconstruction(ErrMissingAPIKey)
	}

	gen, err := r.newGenerator(ctx, r.apiKey)
	if err != nil {
		return model.FailedReconstruction(fmt.Errorf("create Gemini client: %w", err))
	}

	r.logger.Debug("requesting reconstruction", "model", r.model, "fragment_length", len(fragment))

	resp, err := gen.GenerateContent(ctx, r.model, genai.Text(BuildPrompt(fragment)), nil)
	if err != nil {
		return model.FailedReconstruction(fmt.Errorf("generate content: %w", err))
	}
	if resp == nil {
		return model.FailedReconstruction(ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return model.FailedReconstruction(ErrEmptyResponse)
	}

	r.logger.Debug("reconstruction completed", "model", r.model, "length", len(text))

	return model.NewReconstruction(text)
}
