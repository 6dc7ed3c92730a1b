package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// ErrUnknownRole is returned for history entries that are neither user nor model turns
var ErrUnknownRole = errors.New("unknown message role")

// ChatSession is a multi-turn conversation seeded with a system instruction.
// Turns on one session are serialized; distinct sessions share nothing.
type ChatSession struct {
	provider Provider
	model    string
	config   *genai.GenerateContentConfig

	// turn is held across the provider call; mu only guards history
	turn    sync.Mutex
	mu      sync.RWMutex
	history []*genai.Content
}

// NewChatSession opens a session against p. It issues no request.
func NewChatSession(p Provider, model, systemInstruction string, history []Message) (*ChatSession, error) {
	seeded := make([]*genai.Content, 0, len(history))
	for i, msg := range history {
		role, err := toGenaiRole(msg.Role)
		if err != nil {
			return nil, fmt.Errorf("history[%d]: %w", i, err)
		}
		seeded = append(seeded, genai.NewContentFromText(msg.Text, role))
	}

	return &ChatSession{
		provider: p,
		model:    model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		},
		history: seeded,
	}, nil
}

// Send runs one turn with a fresh client handle, so the credential is read
// per turn. History only grows when the provider answers with text.
func (s *ChatSession) Send(ctx context.Context, text string) (*genai.GenerateContentResponse, error) {
	s.turn.Lock()
	defer s.turn.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &ProviderRequestError{Err: err}
	}

	userTurn := genai.NewContentFromText(text, genai.RoleUser)
	s.mu.RLock()
	contents := make([]*genai.Content, 0, len(s.history)+1)
	contents = append(contents, s.history...)
	s.mu.RUnlock()
	contents = append(contents, userTurn)

	resp, err := s.provider.Client().GenerateContent(ctx, s.model, contents, s.config)
	if err != nil {
		return nil, classify(err)
	}

	if reply := replyContent(resp); reply != nil {
		s.mu.Lock()
		s.history = append(s.history, userTurn, reply)
		s.mu.Unlock()
	}
	return resp, nil
}

// History returns a copy of the conversation so far
func (s *ChatSession) History() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]Message, 0, len(s.history))
	for _, c := range s.history {
		messages = append(messages, Message{Role: c.Role, Text: contentText(c)})
	}
	return messages
}

// Len returns the number of turns in the history. It does not wait for a
// turn in flight.
func (s *ChatSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// SystemInstruction returns the persona the session was opened with
func (s *ChatSession) SystemInstruction() string {
	return contentText(s.config.SystemInstruction)
}

// replyContent returns the first candidate's content when it carries text
func replyContent(resp *genai.GenerateContentResponse) *genai.Content {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	c := resp.Candidates[0].Content
	if c == nil || contentText(c) == "" {
		return nil
	}
	if c.Role == "" {
		c.Role = string(genai.RoleModel)
	}
	return c
}

func toGenaiRole(role string) (genai.Role, error) {
	switch strings.ToLower(role) {
	case "user":
		return genai.RoleUser, nil
	case "model", "assistant":
		return genai.RoleModel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}
