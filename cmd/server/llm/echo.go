package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// EchoProvider implements Provider with a local echo backend for development
type EchoProvider struct{}

// NewEchoProvider creates a new echo provider
func NewEchoProvider() Provider {
	return &EchoProvider{}
}

// Client returns the echo backend; it needs no credential
func (e *EchoProvider) Client() Generator {
	return echoGenerator{}
}

// Name returns the provider name
func (e *EchoProvider) Name() string {
	return "Echo"
}

type echoGenerator struct{}

// GenerateContent replies with the last user turn prefixed by "Echo: "
func (echoGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lastUserMessage string
	for i := len(contents) - 1; i >= 0; i-- {
		if contents[i] != nil && contents[i].Role == string(genai.RoleUser) {
			lastUserMessage = contentText(contents[i])
			break
		}
	}

	reply := "Echo: No user message found"
	if lastUserMessage != "" {
		reply = fmt.Sprintf("Echo: %s", lastUserMessage)
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(reply, genai.RoleModel)},
		},
	}, nil
}

// contentText concatenates the text parts of c
func contentText(c *genai.Content) string {
	var text string
	for _, part := range c.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}
