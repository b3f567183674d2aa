// Package fallback walks an ordered table of model candidates until one of
// them produces a completion.
package fallback

import (
	"context"
	"errors"
	"time"

	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/llm"
)

const logModule = "INVOKER"

// ErrNotConfigured is returned when no provider (credential) is available.
// Callers are expected to fall back to a simulated answer.
var ErrNotConfigured = errors.New("ai provider not configured")

type Invoker struct {
	provider     llm.LLMProvider
	candidates   []Candidate
	policy       Policy
	availability AvailabilityStore
	logger       logger.ILogger
}

type InvokerOption func(*Invoker)

// WithAvailabilityStore makes the invoker skip models recently reported missing.
func WithAvailabilityStore(store AvailabilityStore) InvokerOption {
	return func(inv *Invoker) {
		inv.availability = store
	}
}

func WithPolicy(policy Policy) InvokerOption {
	return func(inv *Invoker) {
		inv.policy = policy
	}
}

// NewInvoker builds an invoker. A nil provider yields an invoker that always
// reports ErrNotConfigured.
func NewInvoker(provider llm.LLMProvider, candidates []Candidate, log logger.ILogger, opts ...InvokerOption) *Invoker {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	inv := &Invoker{
		provider:   provider,
		candidates: candidates,
		policy:     DefaultPolicy(),
		logger:     log,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func (inv *Invoker) Configured() bool {
	return inv.provider != nil
}

func (inv *Invoker) Candidates() []Candidate {
	out := make([]Candidate, len(inv.candidates))
	copy(out, inv.candidates)
	return out
}

// Invoke sends prompt to each candidate in order and returns the first answer.
// Failures are reported inside the Outcome; the error is only ErrNotConfigured.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (Outcome, error) {
	if inv.provider == nil {
		return Outcome{}, ErrNotConfigured
	}

	var (
		lastErr  error
		attempts []Attempt
	)

	for _, candidate := range inv.activeCandidates(ctx) {
		text, attempt := inv.attempt(ctx, prompt, candidate, candidate.MaxTokens)
		attempts = append(attempts, attempt.Attempt)

		switch attempt.Decision {
		case DecisionAccept:
			inv.logger.Info(logModule, "Completion succeeded", map[string]interface{}{
				"model":    candidate.ID,
				"attempts": len(attempts),
			})
			return Outcome{Kind: OutcomeSuccess, Text: text, Model: candidate.ID, Attempts: attempts}, nil

		case DecisionAbort:
			inv.logger.Error(logModule, "Aborting model chain", map[string]interface{}{
				"model": candidate.ID,
				"error": attempt.Err,
			})
			return Outcome{
				Kind:      OutcomeRejected,
				Model:     candidate.ID,
				Reason:    attempt.Err,
				Retryable: false,
				Attempts:  attempts,
			}, nil

		case DecisionRetryFloor:
			floor := inv.policy.floor()
			inv.logger.Warn(logModule, "Model rejected token limit, retrying at floor", map[string]interface{}{
				"model":      candidate.ID,
				"max_tokens": candidate.MaxTokens,
				"floor":      floor,
			})
			text, retry := inv.attempt(ctx, prompt, candidate, floor)
			attempts = append(attempts, retry.Attempt)
			if retry.Decision == DecisionAccept {
				return Outcome{Kind: OutcomeSuccess, Text: text, Model: candidate.ID, Attempts: attempts}, nil
			}
			// Any failure of the single retry moves on, whatever its class.
			lastErr = retry.err

		default:
			inv.logger.Warn(logModule, "Model unusable, trying next", map[string]interface{}{
				"model": candidate.ID,
				"error": attempt.Err,
			})
			lastErr = attempt.err
		}
	}

	inv.logger.Error(logModule, "No working model found", map[string]interface{}{
		"attempts":   len(attempts),
		"last_error": errString(lastErr),
	})
	return Outcome{Kind: OutcomeExhausted, LastError: lastErr, Attempts: attempts}, nil
}

// attemptResult keeps the raw error next to the serialisable Attempt.
type attemptResult struct {
	Attempt
	err error
}

func (inv *Invoker) attempt(ctx context.Context, prompt string, candidate Candidate, maxTokens int) (string, attemptResult) {
	callCtx := ctx
	if inv.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, inv.policy.AttemptTimeout)
		defer cancel()
	}

	started := time.Now()
	text, err := inv.provider.Generate(callCtx, prompt,
		llm.WithModel(candidate.ID),
		llm.WithMaxTokens(maxTokens),
		llm.WithTemperature(inv.policy.Temperature),
	)
	if err == nil && text == "" {
		err = llm.ErrEmptyResponse
	}

	res := attemptResult{
		Attempt: Attempt{
			Model:     candidate.ID,
			MaxTokens: maxTokens,
			Decision:  inv.policy.Decide(maxTokens, err),
			Err:       errString(err),
			Duration:  time.Since(started),
		},
		err: err,
	}

	if err != nil && llm.Classify(err) == llm.KindNotFound && inv.availability != nil {
		inv.availability.MarkUnavailable(ctx, candidate.ID)
	}
	return text, res
}

// activeCandidates drops models marked unavailable, unless that would drop all of them.
func (inv *Invoker) activeCandidates(ctx context.Context) []Candidate {
	if inv.availability == nil {
		return inv.candidates
	}
	active := make([]Candidate, 0, len(inv.candidates))
	for _, c := range inv.candidates {
		if inv.availability.IsUnavailable(ctx, c.ID) {
			inv.logger.Debug(logModule, "Skipping unavailable model", map[string]interface{}{"model": c.ID})
			continue
		}
		active = append(active, c)
	}
	if len(active) == 0 {
		return inv.candidates
	}
	return active
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
