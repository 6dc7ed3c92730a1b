package llm

import (
	"io"
	"log/slog"
	"testing"
)

func TestNewProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := Config{Credential: StaticCredential("test-key")}

	tests := []struct {
		name string
		kind string
		env  string
		want string
	}{
		{"echo in development", KindEcho, "development", "Echo"},
		{"echo is case insensitive", "ECHO", "development", "Echo"},
		{"echo in production", KindEcho, "production", "Gemini"},
		{"echo without env", KindEcho, "", "Gemini"},
		{"gemini", KindGemini, "production", "Gemini"},
		{"empty kind", "", "development", "Gemini"},
		{"unknown kind", "openai", "development", "Gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewProvider(tt.kind, tt.env, cfg, logger)
			if provider.Name() != tt.want {
				t.Fatalf("NewProvider(%q, %q) = %s, want %s", tt.kind, tt.env, provider.Name(), tt.want)
			}

			if tt.want == "Gemini" {
				gemini, ok := provider.(*GeminiProvider)
				if !ok {
					t.Fatalf("expected *GeminiProvider, got %T", provider)
				}
				if key := gemini.Client().(*GeminiClient).apiKey; key != "test-key" {
					t.Fatalf("expected configured credential to be kept, got %q", key)
				}
			}
		})
	}
}
