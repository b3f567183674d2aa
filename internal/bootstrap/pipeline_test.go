package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/llm/fallback"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline_WithoutCredentialIsSimulated(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Ai.LLMProvider = "anthropic"
	cfg.Keys.Anthropic = ""

	p := NewPipeline(cfg, logger.NewNopLogger())
	assert.False(t, p.Invoker.Configured())

	_, err := p.Invoker.Invoke(context.Background(), "prompt")
	assert.ErrorIs(t, err, fallback.ErrNotConfigured)
	assert.Equal(t, fallback.DefaultCandidates, p.Invoker.Candidates())
}

func TestNewPipeline_WithCredential(t *testing.T) {
	cfg := config.FromEnv()
	cfg.Ai.LLMProvider = "anthropic"
	cfg.Keys.Anthropic = "sk-test"

	p := NewPipeline(cfg, logger.NewNopLogger())
	assert.True(t, p.Invoker.Configured())
}

func TestLoadCandidates(t *testing.T) {
	log := logger.NewNopLogger()

	path := filepath.Join(t.TempDir(), "candidates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("candidates:\n  - id: model-a\n    max_tokens: 2048\n"), 0o644))

	cfg := config.FromEnv()
	cfg.Ai.CandidatesFile = path
	got := loadCandidates(cfg, log)
	require.Len(t, got, 1)
	assert.Equal(t, "model-a", got[0].ID)

	cfg.Ai.CandidatesFile = filepath.Join(t.TempDir(), "missing.yaml")
	cfg.Ai.LLMProvider = "anthropic"
	assert.Equal(t, fallback.DefaultCandidates, loadCandidates(cfg, log))

	cfg.Ai.CandidatesFile = ""
	cfg.Ai.LLMProvider = "ollama"
	cfg.Ai.LLMModel = "llama3"
	got = loadCandidates(cfg, log)
	require.Len(t, got, 1)
	assert.Equal(t, fallback.Candidate{ID: "llama3", MaxTokens: fallback.FloorTokens}, got[0])
}

func TestNewAvailabilityStore(t *testing.T) {
	log := logger.NewNopLogger()
	cfg := config.FromEnv()
	cfg.Ai.RedisURL = ""

	cfg.Ai.UnavailableTTL = 0
	assert.Nil(t, newAvailabilityStore(cfg, log))

	// a zero ttl never dials Redis
	cfg.Ai.RedisURL = "redis://127.0.0.1:1/0"
	assert.Nil(t, newAvailabilityStore(cfg, log))

	cfg.Ai.RedisURL = ""
	cfg.Ai.UnavailableTTL = time.Minute
	assert.IsType(t, &fallback.MemoryAvailabilityStore{}, newAvailabilityStore(cfg, log))
}
