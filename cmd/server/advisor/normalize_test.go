package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func groundedResponse(text string, chunks ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	candidate := &genai.Candidate{GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: chunks}}
	if text != "" {
		candidate.Content = genai.NewContentFromText(text, genai.RoleModel)
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate}}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want Result
	}{
		{"nil response", nil, Result{Text: "fb", Completeness: Fallback}},
		{"no candidates", &genai.GenerateContentResponse{}, Result{Text: "fb", Completeness: Fallback}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, Result{Text: "fb", Completeness: Fallback}},
		{"text", groundedResponse("hello"), Result{Text: "hello", Completeness: Complete}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.resp, "fb"))
		})
	}
}

func TestNormalizeSources(t *testing.T) {
	tests := []struct {
		name          string
		resp          *genai.GenerateContentResponse
		want          []Source
		wantDefaulted bool
	}{
		{
			name: "nil response",
			resp: nil,
			want: []Source{},
		},
		{
			name: "no grounding metadata",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: []Source{},
		},
		{
			name: "all web",
			resp: groundedResponse("x",
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: "DTI", URI: "https://bnrs.dti.gov.ph"}},
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: "BIR", URI: "https://bir.gov.ph"}},
			),
			want: []Source{
				{Title: "DTI", URI: "https://bnrs.dti.gov.ph"},
				{Title: "BIR", URI: "https://bir.gov.ph"},
			},
		},
		{
			name: "mixed",
			resp: groundedResponse("x",
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: "A", URI: "u1"}},
				&genai.GroundingChunk{RetrievedContext: &genai.GroundingChunkRetrievedContext{}},
				nil,
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{}},
			),
			want: []Source{
				{Title: "A", URI: "u1"},
				{Title: "Reference", URI: "#"},
			},
			wantDefaulted: true,
		},
		{
			name: "title only",
			resp: groundedResponse("x",
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: "Only title"}},
			),
			want:          []Source{{Title: "Only title", URI: "#"}},
			wantDefaulted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := normalizeSources(tt.resp)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDefaulted, defaulted)
		})
	}
}

func TestCompleteness_String(t *testing.T) {
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "partial", Partial.String())
	assert.Equal(t, "fallback", Fallback.String())
	assert.Equal(t, "unknown", Completeness(42).String())
}
