package factory

import (
	"ai-docstruct-be/pkg/llm"
	"ai-docstruct-be/pkg/llm/anthropic"
	"ai-docstruct-be/pkg/llm/huggingface"
	"ai-docstruct-be/pkg/llm/ollama"
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredential is returned for hosted providers configured without an API key.
var ErrMissingCredential = errors.New("llm provider credential not configured")

type ProviderConfig struct {
	Provider string // "anthropic", "ollama", "huggingface"
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "anthropic":
		if cfg.APIKey == "" {
			return nil, ErrMissingCredential
		}
		return anthropic.NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "huggingface":
		if cfg.APIKey == "" {
			return nil, ErrMissingCredential
		}
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
