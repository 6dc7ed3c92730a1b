package main

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"madiskarte.ai/cmd/server/advisor"
	"madiskarte.ai/cmd/server/llm"
	"madiskarte.ai/cmd/server/publishing"
	"madiskarte.ai/rpc"
)

// GetMarketTrends implements rpc.MentorServiceServer
func (app *application) GetMarketTrends(ctx context.Context, req *rpc.MarketTrendsRequest) (*rpc.MarketTrendsResponse, error) {
	app.logger.Info("received market trends request", "location_len", len(req.Location))

	start := time.Now()
	insight, err := app.advisor.MarketTrends(ctx, req.Location)
	app.observeLLMCall("market_trends", start, err)
	if err != nil {
		return nil, err
	}

	incrementResult("market_trends", insight.Completeness.String())
	recordGroundingSources(len(insight.Sources))

	resp := &rpc.MarketTrendsResponse{
		Text:         insight.Text,
		Sources:      make([]rpc.Source, 0, len(insight.Sources)),
		Places:       make([]rpc.Place, 0, len(insight.Places)),
		Completeness: insight.Completeness.String(),
	}
	for _, src := range insight.Sources {
		resp.Sources = append(resp.Sources, rpc.Source{Title: src.Title, URI: src.URI})
	}
	for _, p := range insight.Places {
		resp.Places = append(resp.Places, rpc.Place{Name: p.Name, Address: p.Address, URI: p.URI})
	}
	return resp, nil
}

// CalculateProfitAdvice implements rpc.MentorServiceServer
func (app *application) CalculateProfitAdvice(ctx context.Context, req *rpc.ProfitAdviceRequest) (*rpc.TextResponse, error) {
	app.logger.Info("received profit advice request", "business_len", len(req.Business))

	start := time.Now()
	result, err := app.advisor.ProfitAdvice(ctx, advisor.ProfitInput{
		Business: req.Business,
		Capital:  req.Capital,
		Expenses: req.Expenses,
	})
	app.observeLLMCall("profit_advice", start, err)
	if err != nil {
		return nil, err
	}
	return textResponse("profit_advice", result), nil
}

// GetBusinessRegistrationGuide implements rpc.MentorServiceServer
func (app *application) GetBusinessRegistrationGuide(ctx context.Context, req *rpc.RegistrationGuideRequest) (*rpc.TextResponse, error) {
	app.logger.Info("received registration guide request", "business_type", req.BusinessType)

	start := time.Now()
	result, err := app.advisor.RegistrationGuide(ctx, req.BusinessType)
	app.observeLLMCall("registration_guide", start, err)
	if err != nil {
		return nil, err
	}
	return textResponse("registration_guide", result), nil
}

// GeneratePlayStoreMetadata implements rpc.MentorServiceServer
func (app *application) GeneratePlayStoreMetadata(ctx context.Context, req *rpc.PlayStoreMetadataRequest) (*rpc.TextResponse, error) {
	app.logger.Info("received play store metadata request")

	start := time.Now()
	result, err := app.advisor.PlayStoreMetadata(ctx)
	app.observeLLMCall("play_store_metadata", start, err)
	if err != nil {
		return nil, err
	}
	return textResponse("play_store_metadata", result), nil
}

// StartMentorChat implements rpc.MentorServiceServer
func (app *application) StartMentorChat(ctx context.Context, req *rpc.StartMentorChatRequest) (*rpc.StartMentorChatResponse, error) {
	history := make([]llm.Message, 0, len(req.History))
	for _, msg := range req.History {
		history = append(history, llm.Message{Role: msg.Role, Text: msg.Text})
	}

	chat, err := app.advisor.StartMentorChat(history)
	if err != nil {
		return nil, err
	}

	sessionID := app.sessionStore.Add(chat)
	incrementSessionsCreated()
	app.logger.Info("mentor chat started", "session_id", sessionID, "history_len", len(history))

	resp := &rpc.StartMentorChatResponse{
		SessionID:    sessionID,
		MessageCount: uint32(chat.Len()),
	}
	if info, ok := app.sessionStore.Info(sessionID); ok {
		resp.CreatedAt = rpc.NewTimestamp(info.CreatedAt)
	}
	return resp, nil
}

// SendMentorMessage implements rpc.MentorServiceServer
func (app *application) SendMentorMessage(ctx context.Context, req *rpc.SendMentorMessageRequest) (*rpc.SendMentorMessageResponse, error) {
	app.logger.Info("received mentor message",
		"session_id", req.SessionID,
		"message_len", len(req.Message))

	if strings.TrimSpace(req.Message) == "" {
		return nil, status.Error(codes.InvalidArgument, "message must not be empty")
	}

	chat, ok := app.sessionStore.Get(req.SessionID)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "chat session %q not found or expired", req.SessionID)
	}

	start := time.Now()
	result, err := app.advisor.MentorReply(ctx, chat, req.Message)
	app.observeLLMCall("mentor_chat", start, err)
	if err != nil {
		return nil, err
	}
	incrementResult("mentor_chat", result.Completeness.String())

	return &rpc.SendMentorMessageResponse{
		SessionID:    req.SessionID,
		Reply:        result.Text,
		Completeness: result.Completeness.String(),
		MessageCount: uint32(chat.Len()),
	}, nil
}

// GetChatHistory implements rpc.MentorServiceServer
func (app *application) GetChatHistory(ctx context.Context, req *rpc.GetChatHistoryRequest) (*rpc.GetChatHistoryResponse, error) {
	app.logger.Info("received get history request", "session_id", req.SessionID)

	chat, ok := app.sessionStore.Get(req.SessionID)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "chat session %q not found or expired", req.SessionID)
	}

	history := chat.History()
	messages := make([]rpc.ChatMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, rpc.ChatMessage{Role: msg.Role, Text: msg.Text})
	}

	resp := &rpc.GetChatHistoryResponse{
		SessionID: req.SessionID,
		Messages:  messages,
	}
	if info, ok := app.sessionStore.Info(req.SessionID); ok {
		resp.CreatedAt = rpc.NewTimestamp(info.CreatedAt)
		resp.LastActive = rpc.NewTimestamp(info.LastActive)
	}
	return resp, nil
}

// EndMentorChat implements rpc.MentorServiceServer
func (app *application) EndMentorChat(ctx context.Context, req *rpc.EndMentorChatRequest) (*rpc.EndMentorChatResponse, error) {
	chat, ok := app.sessionStore.Get(req.SessionID)
	if !ok || !app.sessionStore.Remove(req.SessionID) {
		return nil, status.Errorf(codes.NotFound, "chat session %q not found or expired", req.SessionID)
	}

	app.logger.Info("mentor chat ended",
		"session_id", req.SessionID,
		"turns", chat.Len(),
		"remaining_sessions", app.sessionStore.GetSessionCount())

	return &rpc.EndMentorChatResponse{
		SessionID:    req.SessionID,
		MessageCount: uint32(chat.Len()),
	}, nil
}

// GetPublishingChecklist implements rpc.MentorServiceServer
func (app *application) GetPublishingChecklist(ctx context.Context, req *rpc.GetPublishingChecklistRequest) (*rpc.GetPublishingChecklistResponse, error) {
	checklist := publishing.DefaultChecklist()
	if err := checklist.Apply(req.States); err != nil {
		return nil, err
	}

	progress := checklist.Progress()
	resp := &rpc.GetPublishingChecklistResponse{
		Completed: uint32(progress.Completed),
		Total:     uint32(progress.Total),
		Percent:   uint32(progress.Percent),
	}
	for _, item := range checklist.Items() {
		if item.Hidden {
			continue
		}
		resp.Items = append(resp.Items, rpc.ChecklistItem{
			ID:    item.ID,
			Label: item.Label,
			Hint:  item.Hint,
			Done:  item.Done,
		})
	}
	for _, cmd := range publishing.GitCommands() {
		resp.GitCommands = append(resp.GitCommands, rpc.GitCommand{Command: cmd.Command, Description: cmd.Description})
	}
	return resp, nil
}

func (app *application) observeLLMCall(operation string, start time.Time, err error) {
	provider := app.advisor.ProviderName()
	recordLLMCallDuration(provider, operation, time.Since(start).Seconds())
	if err != nil {
		incrementLLMError(provider, errorType(err))
	}
}

func textResponse(operation string, result advisor.Result) *rpc.TextResponse {
	incrementResult(operation, result.Completeness.String())
	return &rpc.TextResponse{
		Text:         result.Text,
		Completeness: result.Completeness.String(),
	}
}
