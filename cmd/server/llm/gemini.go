package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model every request targets unless configured
const DefaultModel = "gemini-3-flash-preview"

var errEmptyCredential = errors.New("credential is empty")

// CredentialSource yields the API key at the moment a client is requested
type CredentialSource func() string

// EnvCredential reads the first non-empty variable among names on every call
func EnvCredential(names ...string) CredentialSource {
	return func() string {
		for _, name := range names {
			if v := os.Getenv(name); v != "" {
				return v
			}
		}
		return ""
	}
}

// StaticCredential always yields key
func StaticCredential(key string) CredentialSource {
	return func() string { return key }
}

// Config carries everything needed to reach Gemini
type Config struct {
	Credential CredentialSource
	BaseURL    string // empty uses the genai default endpoint
}

// GeminiProvider hands out handles to Google's Gemini API
type GeminiProvider struct {
	config Config
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(cfg Config) *GeminiProvider {
	if cfg.Credential == nil {
		cfg.Credential = EnvCredential("GEMINI_API_KEY", "API_KEY")
	}
	return &GeminiProvider{config: cfg}
}

// Client snapshots the current credential into a new handle. No network
// traffic happens until the handle is used.
func (g *GeminiProvider) Client() Generator {
	return &GeminiClient{
		apiKey:  g.config.Credential(),
		baseURL: g.config.BaseURL,
	}
}

// Name returns the provider name
func (g *GeminiProvider) Name() string {
	return "Gemini"
}

// GeminiClient is a lazily connected handle to the Gemini API. Only a
// successful connection is kept; a failed one is retried on the next call.
type GeminiClient struct {
	apiKey  string
	baseURL string

	mu     sync.Mutex
	client *genai.Client
}

func (c *GeminiClient) connect(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, &ProviderAuthError{Err: errEmptyCredential}
	}

	cfg := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions.BaseURL = c.baseURL
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, &ProviderAuthError{Err: fmt.Errorf("failed to create Gemini client: %w", err)}
	}
	c.client = client
	return client, nil
}

// GenerateContent implements Generator
func (c *GeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	return resp, nil
}
