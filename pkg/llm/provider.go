package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature *float64
	MaxTokens   int
	Model       string // Override default model
	System      string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = &temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the output token ceiling requested from the model.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithSystem(system string) Option {
	return func(o *Options) {
		o.System = system
	}
}

// ApplyOptions folds opts over defaults and returns the result.
func ApplyOptions(defaults Options, opts ...Option) *Options {
	options := defaults
	for _, opt := range opts {
		opt(&options)
	}
	return &options
}

// TemperatureOr returns the configured temperature or fallback when unset.
func (o *Options) TemperatureOr(fallback float64) float64 {
	if o.Temperature == nil {
		return fallback
	}
	return *o.Temperature
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
