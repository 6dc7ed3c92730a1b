package llm

import (
	"context"
	"errors"
	"sync"

	"google.golang.org/genai"
)

// MockCall is one request observed by a MockProvider
type MockCall struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name string

	mu           sync.Mutex
	responseText string
	chunks       []*genai.GroundingChunk
	err          error
	clients      int
	calls        []MockCall
	respond      func(MockCall) (*genai.GenerateContentResponse, error)
}

// NewMockProvider creates a new mock provider that answers with responseText
func NewMockProvider(name, responseText string) *MockProvider {
	return &MockProvider{name: name, responseText: responseText}
}

// SetResponse configures the text and grounding chunks of every reply
func (m *MockProvider) SetResponse(text string, chunks ...*genai.GroundingChunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responseText = text
	m.chunks = chunks
}

// SetError configures the mock to fail every call with err
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetErrorMessage is SetError with a plain message
func (m *MockProvider) SetErrorMessage(message string) {
	m.SetError(errors.New(message))
}

// RespondWith replaces the canned reply with fn
func (m *MockProvider) RespondWith(fn func(MockCall) (*genai.GenerateContentResponse, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.respond = fn
}

// Client implements the Provider interface
func (m *MockProvider) Client() Generator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients++
	return mockGenerator{provider: m}
}

// Name implements the Provider interface
func (m *MockProvider) Name() string {
	return m.name
}

// Calls returns a copy of every request received so far
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of requests received so far
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// ClientCount returns how many client handles were handed out
func (m *MockProvider) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clients
}

type mockGenerator struct {
	provider *MockProvider
}

func (g mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m := g.provider
	call := MockCall{Model: model, Contents: contents, Config: config}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	err, respond := m.err, m.respond
	text, chunks := m.responseText, m.chunks
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if respond != nil {
		return respond(call)
	}
	if err != nil {
		return nil, err
	}

	candidate := &genai.Candidate{}
	if text != "" {
		candidate.Content = genai.NewContentFromText(text, genai.RoleModel)
	}
	if len(chunks) > 0 {
		candidate.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: chunks}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate}}, nil
}
