package llm

import (
	"context"

	"google.golang.org/genai"
)

// Generator is the slice of the genai Models API the server depends on
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider hands out client handles for a generative backend
type Provider interface {
	// Client returns a handle for a single unit of work. It never fails;
	// credential problems surface on the first request.
	Client() Generator
	Name() string
}

// Message represents a single message in the conversation
type Message struct {
	Role string // "user" or "model" ("assistant" is accepted as an alias)
	Text string
}

// Request is one outbound generation request
type Request struct {
	Model  string
	Prompt string
	Config *genai.GenerateContentConfig // nil when no tools or instructions apply
}

// Generate obtains a fresh client handle from p and issues req once.
// Provider failures are returned as *ProviderAuthError or *ProviderRequestError.
func Generate(ctx context.Context, p Provider, req Request) (*genai.GenerateContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProviderRequestError{Err: err}
	}

	resp, err := p.Client().GenerateContent(ctx, req.Model, genai.Text(req.Prompt), req.Config)
	if err != nil {
		return nil, classify(err)
	}
	return resp, nil
}
