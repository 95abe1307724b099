package factory

import (
	"testing"

	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm/ollama"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(ProviderConfig{Type: "ollama", Model: "llama3.1:8b"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	p, err = NewLLMProvider(ProviderConfig{Type: "GROQ", Model: "llama-3.1-8b-instant", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	_, err = NewLLMProvider(ProviderConfig{Type: "groq"})
	assert.ErrorContains(t, err, "requires an API key")

	_, err = NewLLMProvider(ProviderConfig{Type: "gemini"})
	assert.ErrorContains(t, err, "unsupported")
}
