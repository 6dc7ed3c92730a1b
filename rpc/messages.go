package rpc

import (
	"google.golang.org/protobuf/types/known/emptypb"
)

// Completeness values reported on responses
const (
	CompletenessComplete = "complete"
	CompletenessPartial  = "partial"
	CompletenessFallback = "fallback"
)

type MarketTrendsRequest struct {
	Location string `json:"location"`
}

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Place struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	URI     string `json:"uri"`
}

type MarketTrendsResponse struct {
	Text         string   `json:"text"`
	Sources      []Source `json:"sources"`
	Places       []Place  `json:"places"`
	Completeness string   `json:"completeness"`
}

type ProfitAdviceRequest struct {
	Business string `json:"business"`
	Capital  string `json:"capital"`
	Expenses string `json:"expenses"`
}

type RegistrationGuideRequest struct {
	BusinessType string `json:"business_type"`
}

// PlayStoreMetadataRequest takes no input; it travels as google.protobuf.Empty
type PlayStoreMetadataRequest = emptypb.Empty

// TextResponse carries a single normalized answer
type TextResponse struct {
	Text         string `json:"text"`
	Completeness string `json:"completeness"`
}

type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type StartMentorChatRequest struct {
	History []ChatMessage `json:"history"`
}

type StartMentorChatResponse struct {
	SessionID    string     `json:"session_id"`
	MessageCount uint32     `json:"message_count"`
	CreatedAt    *Timestamp `json:"created_at,omitempty"`
}

type SendMentorMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type SendMentorMessageResponse struct {
	SessionID    string `json:"session_id"`
	Reply        string `json:"reply"`
	Completeness string `json:"completeness"`
	MessageCount uint32 `json:"message_count"`
}

type GetChatHistoryRequest struct {
	SessionID string `json:"session_id"`
}

type GetChatHistoryResponse struct {
	SessionID  string        `json:"session_id"`
	Messages   []ChatMessage `json:"messages"`
	CreatedAt  *Timestamp    `json:"created_at,omitempty"`
	LastActive *Timestamp    `json:"last_active,omitempty"`
}

type EndMentorChatRequest struct {
	SessionID string `json:"session_id"`
}

type EndMentorChatResponse struct {
	SessionID    string `json:"session_id"`
	MessageCount uint32 `json:"message_count"`
}

type ChecklistItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
	Done  bool   `json:"done"`
}

type GitCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type GetPublishingChecklistRequest struct {
	// States overrides the default done state per item id
	States map[string]bool `json:"states"`
}

type GetPublishingChecklistResponse struct {
	Items       []ChecklistItem `json:"items"`
	Completed   uint32          `json:"completed"`
	Total       uint32          `json:"total"`
	Percent     uint32          `json:"percent"`
	GitCommands []GitCommand    `json:"git_commands"`
}
