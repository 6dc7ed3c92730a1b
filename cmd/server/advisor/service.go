package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"madiskarte.ai/cmd/server/llm"
)

// Place is a structured supplier location. Market trends currently return
// none; suppliers come back through web sources instead.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	URI     string `json:"uri"`
}

// MarketInsight is the normalized answer to a market trends query
type MarketInsight struct {
	Text         string
	Sources      []Source
	Places       []Place
	Completeness Completeness
}

// Service runs the Madiskart-E prompts against a provider. It holds no
// per-call state, so one Service serves concurrent callers.
type Service struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

// NewService creates a new advisor service. An empty model selects llm.DefaultModel.
func NewService(provider llm.Provider, model string, logger *slog.Logger) *Service {
	if model == "" {
		model = llm.DefaultModel
	}
	return &Service{provider: provider, model: model, logger: logger}
}

// Model returns the model identifier requests are sent to
func (s *Service) Model() string {
	return s.model
}

// ProviderName returns the name of the backing provider
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// MarketTrends finds micro-business ideas and suppliers near location
func (s *Service) MarketTrends(ctx context.Context, location string) (MarketInsight, error) {
	resp, err := s.generate(ctx, "market_trends", MarketTrendsRequest(s.model, location))
	if err != nil {
		return MarketInsight{}, err
	}

	text := normalizeText(resp, FallbackMarketTrends)
	sources, defaulted := normalizeSources(resp)

	completeness := text.Completeness
	if completeness == Complete && defaulted {
		completeness = Partial
	}

	return MarketInsight{
		Text:         text.Text,
		Sources:      sources,
		Places:       []Place{},
		Completeness: completeness,
	}, nil
}

// ProfitAdvice suggests pricing, daily targets and ROI for a business
func (s *Service) ProfitAdvice(ctx context.Context, in ProfitInput) (Result, error) {
	resp, err := s.generate(ctx, "profit_advice", ProfitAdviceRequest(s.model, in))
	if err != nil {
		return Result{}, err
	}
	return normalizeText(resp, FallbackProfitAdvice), nil
}

// RegistrationGuide lists the registration steps for businessType
func (s *Service) RegistrationGuide(ctx context.Context, businessType string) (Result, error) {
	resp, err := s.generate(ctx, "registration_guide", RegistrationGuideRequest(s.model, businessType))
	if err != nil {
		return Result{}, err
	}
	return normalizeText(resp, FallbackRegistrationGuide), nil
}

// PlayStoreMetadata drafts the app's Play Store listing
func (s *Service) PlayStoreMetadata(ctx context.Context) (Result, error) {
	resp, err := s.generate(ctx, "play_store_metadata", PlayStoreMetadataRequest(s.model))
	if err != nil {
		return Result{}, err
	}
	return normalizeText(resp, FallbackPlayStoreMetadata), nil
}

// StartMentorChat opens a mentor conversation seeded with history. No
// request is sent until the first turn.
func (s *Service) StartMentorChat(history []llm.Message) (*llm.ChatSession, error) {
	session, err := llm.NewChatSession(s.provider, s.model, MentorInstruction, history)
	if err != nil {
		return nil, fmt.Errorf("start mentor chat: %w", err)
	}
	return session, nil
}

// MentorReply sends one turn on session and normalizes the answer
func (s *Service) MentorReply(ctx context.Context, session *llm.ChatSession, message string) (Result, error) {
	start := time.Now()
	resp, err := session.Send(ctx, message)
	if err != nil {
		s.logger.Error("mentor turn failed", "provider", s.provider.Name(), "duration", time.Since(start), "error", err)
		return Result{}, err
	}
	return normalizeText(resp, FallbackMentorReply), nil
}

func (s *Service) generate(ctx context.Context, operation string, req llm.Request) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := llm.Generate(ctx, s.provider, req)
	if err != nil {
		s.logger.Error("provider call failed",
			"operation", operation,
			"provider", s.provider.Name(),
			"duration", time.Since(start),
			"error", err)
		return nil, err
	}

	s.logger.Debug("provider call finished",
		"operation", operation,
		"provider", s.provider.Name(),
		"duration", time.Since(start))
	return resp, nil
}
