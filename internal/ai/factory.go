package ai

import "code-auditor/internal/config"

func NewProvider(cfg *config.Config) Provider {

	switch cfg.AIProvider {

	case "openai":
		return NewOpenAI(
			cfg.OpenAIKey,
			cfg.OpenAIModel,
		)

	default:
		return NewGemini(
			cfg.GeminiKey,
			cfg.GeminiModel,
		)
	}
}
