package factory

import (
	"testing"

	"ai-docstruct-be/pkg/llm/anthropic"
	"ai-docstruct-be/pkg/llm/huggingface"
	"ai-docstruct-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(ProviderConfig{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &anthropic.AnthropicProvider{}, p)

	p, err = NewLLMProvider(ProviderConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	require.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	p, err = NewLLMProvider(ProviderConfig{Provider: "huggingface", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &huggingface.HuggingFaceProvider{}, p)
}

func TestNewLLMProvider_Errors(t *testing.T) {
	_, err := NewLLMProvider(ProviderConfig{Provider: "anthropic"})
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewLLMProvider(ProviderConfig{Provider: "huggingface"})
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = NewLLMProvider(ProviderConfig{Provider: "bard", APIKey: "k"})
	assert.EqualError(t, err, "unsupported LLM provider: bard")
}
