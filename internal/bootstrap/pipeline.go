package bootstrap

import (
	"context"
	"errors"
	"time"

	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/exporter"
	"ai-docstruct-be/pkg/extractor"
	"ai-docstruct-be/pkg/llm"
	"ai-docstruct-be/pkg/llm/factory"
	"ai-docstruct-be/pkg/llm/fallback"

	"github.com/redis/go-redis/v9"
)

const bootstrapModule = "BOOTSTRAP"

// Pipeline holds the three core stages, shared by the REST server and the CLI.
type Pipeline struct {
	Extractor *extractor.Extractor
	Invoker   *fallback.Invoker
	Exporter  *exporter.Exporter
}

func NewPipeline(cfg *config.Config, log logger.ILogger) *Pipeline {
	return &Pipeline{
		Extractor: extractor.New(log),
		Invoker:   newInvoker(cfg, log),
		Exporter: exporter.New(log,
			exporter.WithCompression(cfg.Export.PDFCompress),
		),
	}
}

func newInvoker(cfg *config.Config, log logger.ILogger) *fallback.Invoker {
	provider := newProvider(cfg, log)
	candidates := loadCandidates(cfg, log)

	policy := fallback.DefaultPolicy()
	if cfg.Ai.AttemptTimeout > 0 {
		policy.AttemptTimeout = cfg.Ai.AttemptTimeout
	}

	return fallback.NewInvoker(provider, candidates, log,
		fallback.WithPolicy(policy),
		fallback.WithAvailabilityStore(newAvailabilityStore(cfg, log)),
	)
}

// newProvider returns nil when no credential is configured; the invoker then
// reports ErrNotConfigured and callers fall back to the simulated answer.
func newProvider(cfg *config.Config, log logger.ILogger) llm.LLMProvider {
	provider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.BaseURL,
		APIKey:   cfg.Ai.APIKey(cfg.Keys),
		Timeout:  cfg.Ai.AttemptTimeout,
	})
	if errors.Is(err, factory.ErrMissingCredential) {
		log.Warn(bootstrapModule, "No LLM credential configured, responses will be simulated", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
		})
		return nil
	}
	if err != nil {
		log.Error(bootstrapModule, "Failed to initialize LLM provider", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
		return nil
	}

	log.Info(bootstrapModule, "LLM provider initialized", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
	})
	return provider
}

func loadCandidates(cfg *config.Config, log logger.ILogger) []fallback.Candidate {
	if cfg.Ai.CandidatesFile != "" {
		candidates, err := fallback.LoadCandidates(cfg.Ai.CandidatesFile)
		if err == nil {
			return candidates
		}
		log.Error(bootstrapModule, "Failed to load candidates file, using defaults", map[string]interface{}{
			"path":  cfg.Ai.CandidatesFile,
			"error": err.Error(),
		})
	}

	// self-hosted providers serve a single configured model
	if cfg.Ai.LLMProvider != "anthropic" && cfg.Ai.LLMProvider != "" && cfg.Ai.LLMModel != "" {
		return []fallback.Candidate{{ID: cfg.Ai.LLMModel, MaxTokens: fallback.FloorTokens}}
	}
	return fallback.DefaultCandidates
}

// newAvailabilityStore returns nil when AI_UNAVAILABLE_TTL is not positive,
// which turns availability tracking off.
func newAvailabilityStore(cfg *config.Config, log logger.ILogger) fallback.AvailabilityStore {
	if cfg.Ai.UnavailableTTL <= 0 {
		log.Info(bootstrapModule, "Model availability tracking disabled", map[string]interface{}{
			"ttl": cfg.Ai.UnavailableTTL.String(),
		})
		return nil
	}
	if cfg.Ai.RedisURL == "" {
		return fallback.NewMemoryAvailabilityStore(cfg.Ai.UnavailableTTL)
	}

	opt, err := redis.ParseURL(cfg.Ai.RedisURL)
	if err != nil {
		log.Warn(bootstrapModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.Ai.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn(bootstrapModule, "Failed to connect to Redis, using in-memory model availability", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rdb.Close()
		return fallback.NewMemoryAvailabilityStore(cfg.Ai.UnavailableTTL)
	}
	return fallback.NewRedisAvailabilityStore(rdb, cfg.Ai.UnavailableTTL)
}
