// Package advisor turns Madiskart-E feature requests into Gemini prompts and
// shapes the answers into always-renderable results.
package advisor

import (
	"fmt"

	"google.golang.org/genai"

	"madiskarte.ai/cmd/server/llm"
)

// Fallback texts shown when the provider returns no text
const (
	FallbackMarketTrends      = "No insights found."
	FallbackProfitAdvice      = "No advice generated."
	FallbackRegistrationGuide = "No guide available."
	FallbackPlayStoreMetadata = "Metadata generation failed."
	FallbackMentorReply       = "No reply generated."
)

// MentorInstruction is the persona every mentor chat is opened with
const MentorInstruction = "You are the primary mentor for 'Madiskart-E', a friendly and expert Filipino business coach. " +
	"Use a mix of English and Tagalog (Taglish). Your goal is to help Filipinos build sustainable small businesses. " +
	"Give practical, locally-relevant advice about capital, marketing (especially on Facebook/TikTok), and daily operations in the PH context."

// ProfitInput describes the business to cost out. Capital and Expenses are
// display strings and are embedded in the prompt as given.
type ProfitInput struct {
	Business string
	Capital  string
	Expenses string
}

// MarketTrendsRequest asks for local trends and suppliers, grounded on Google Search
func MarketTrendsRequest(model, location string) llm.Request {
	return llm.Request{
		Model: model,
		Prompt: fmt.Sprintf("Analyze profitable micro-business trends and identify specific wholesale hubs, 'Bagsakan' centers, "+
			"or major suppliers near %s, Philippines. List 3 specific business ideas and where to get supplies for them locally.", location),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	}
}

// ProfitAdviceRequest frames the model as an accountant for in
func ProfitAdviceRequest(model string, in ProfitInput) llm.Request {
	return llm.Request{
		Model: model,
		Prompt: fmt.Sprintf("Acting as a Filipino business accountant for the 'Madiskart-E' app, analyze this business: %s.\n"+
			"Initial Capital: ₱%s. Monthly Operating Expenses (Rent, Kuryente, etc): ₱%s.\n"+
			"Suggest a pricing strategy, daily target sales, and estimated months to get the Return on Investment (ROI) "+
			"in the Philippine context. Keep it encouraging but realistic.", in.Business, in.Capital, in.Expenses),
	}
}

// RegistrationGuideRequest asks for the PH registration checklist for businessType
func RegistrationGuideRequest(model, businessType string) llm.Request {
	return llm.Request{
		Model: model,
		Prompt: fmt.Sprintf("Provide a detailed, step-by-step checklist for registering a %s in the Philippines. "+
			"Include DTI (for sole proprietorship) or SEC (for corporations), BIR, Mayor's Permit, and SSS/PhilHealth requirements. "+
			"Keep it practical for a first-time Filipino entrepreneur.", businessType),
	}
}

// PlayStoreMetadataRequest asks for the app's own store listing
func PlayStoreMetadataRequest(model string) llm.Request {
	return llm.Request{
		Model: model,
		Prompt: "Write a professional Google Play Store listing for an app named 'Madiskart-E: Pinoy Entrepreneur Hub'.\n" +
			"It helps Filipinos find local suppliers, calculate profits, and get AI business mentoring.\n" +
			"Include:\n" +
			"1. A Short Description (max 80 chars) - catchy and localized.\n" +
			"2. A Full Description (max 4000 chars) - highlighting benefits like 'Bagsakan Finder', 'Kita Calculator', and 'AI Aling Nena Mentor'.\n" +
			"Use a mix of professional English and encouraging Tagalog.",
	}
}
