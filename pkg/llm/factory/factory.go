package factory

import (
	"fmt"
	"strings"

	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm/ollama"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm/openai"
)

type ProviderConfig struct {
	Type    string // "groq", "openai" or "ollama"
	Model   string
	BaseURL string
	APIKey  string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch strings.ToLower(cfg.Type) {
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "groq", "openai":
		if cfg.APIKey == "" && cfg.BaseURL == "" {
			return nil, fmt.Errorf("%s provider requires an API key", cfg.Type)
		}
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
