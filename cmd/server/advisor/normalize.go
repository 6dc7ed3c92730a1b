package advisor

import "google.golang.org/genai"

// Default values for grounding fields the provider leaves out
const (
	DefaultSourceTitle = "Reference"
	DefaultSourceURI   = "#"
)

// Completeness records how much of a result came from the provider
type Completeness int

const (
	// Complete means every field came from the provider
	Complete Completeness = iota
	// Partial means the text came from the provider but grounding was patched up
	Partial
	// Fallback means the provider returned no text at all
	Fallback
)

// String returns the string representation of a Completeness
func (c Completeness) String() string {
	switch c {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Source is one web citation backing a grounded answer
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Result is normalized provider text. Text is never empty.
type Result struct {
	Text         string
	Completeness Completeness
}

// normalizeText prefers the provider's text and falls back otherwise
func normalizeText(resp *genai.GenerateContentResponse, fallback string) Result {
	if text := responseText(resp); text != "" {
		return Result{Text: text, Completeness: Complete}
	}
	return Result{Text: fallback, Completeness: Fallback}
}

// normalizeSources keeps web chunks in order and defaults missing fields.
// The returned slice is never nil; defaulted is set when anything was
// dropped or patched.
func normalizeSources(resp *genai.GenerateContentResponse) (sources []Source, defaulted bool) {
	sources = []Source{}
	for _, chunk := range groundingChunks(resp) {
		if chunk == nil || chunk.Web == nil {
			defaulted = true
			continue
		}

		src := Source{Title: chunk.Web.Title, URI: chunk.Web.URI}
		if src.Title == "" {
			src.Title = DefaultSourceTitle
			defaulted = true
		}
		if src.URI == "" {
			src.URI = DefaultSourceURI
			defaulted = true
		}
		sources = append(sources, src)
	}
	return sources, defaulted
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	if c := resp.Candidates[0]; c == nil || c.Content == nil {
		return ""
	}
	return resp.Text()
}

func groundingChunks(resp *genai.GenerateContentResponse) []*genai.GroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}
	return meta.GroundingChunks
}
