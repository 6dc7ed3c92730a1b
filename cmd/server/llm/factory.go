package llm

import (
	"log/slog"
	"strings"
)

// Provider kinds accepted by NewProvider
const (
	KindGemini = "gemini"
	KindEcho   = "echo"
)

// NewProvider creates a provider for kind. Echo is only honoured in
// development; anything else resolves to Gemini.
func NewProvider(kind, env string, cfg Config, logger *slog.Logger) Provider {
	isDev := env == "development"

	switch strings.ToLower(kind) {
	case KindEcho:
		if !isDev {
			logger.Warn("Echo provider requested outside development, using Gemini", "env", env)
			return NewGeminiProvider(cfg)
		}
		logger.Info("using Echo provider for development")
		return NewEchoProvider()
	case KindGemini, "":
		return NewGeminiProvider(cfg)
	default:
		logger.Warn("unknown provider, falling back to Gemini", "provider", kind)
		return NewGeminiProvider(cfg)
	}
}
