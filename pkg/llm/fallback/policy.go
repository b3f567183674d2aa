package fallback

import (
	"time"

	"ai-docstruct-be/pkg/llm"
)

// Decision is what the invoker does after an attempt.
type Decision string

const (
	DecisionAccept     Decision = "accept"
	DecisionNext       Decision = "next"
	DecisionRetryFloor Decision = "retry_floor"
	DecisionAbort      Decision = "abort"
)

// Policy holds the retry rules applied to every candidate.
type Policy struct {
	// FloorTokens is the ceiling used when a candidate rejects its own.
	FloorTokens int
	// AttemptTimeout bounds every single completion request. Zero disables it.
	AttemptTimeout time.Duration
	Temperature    float64
	// Rules maps an error class to its decision. Missing kinds abort.
	Rules map[llm.ErrorKind]Decision
}

// DefaultRules: a missing model or a malformed request moves on, a rejected
// ceiling is retried once at the floor, everything else ends the chain.
var DefaultRules = map[llm.ErrorKind]Decision{
	llm.KindNotFound:     DecisionNext,
	llm.KindTokenCeiling: DecisionRetryFloor,
	llm.KindBadRequest:   DecisionNext,
	llm.KindEmpty:        DecisionNext,
	llm.KindFatal:        DecisionAbort,
}

func DefaultPolicy() Policy {
	return Policy{
		FloorTokens:    FloorTokens,
		AttemptTimeout: 120 * time.Second,
		Temperature:    0,
		Rules:          DefaultRules,
	}
}

// Decide maps the error of an attempt made with maxTokens to the next step.
func (p Policy) Decide(maxTokens int, err error) Decision {
	if err == nil {
		return DecisionAccept
	}
	rules := p.Rules
	if rules == nil {
		rules = DefaultRules
	}
	decision, ok := rules[llm.Classify(err)]
	if !ok {
		return DecisionAbort
	}
	if decision == DecisionRetryFloor && maxTokens <= p.floor() {
		return DecisionNext
	}
	return decision
}

func (p Policy) floor() int {
	if p.FloorTokens <= 0 {
		return FloorTokens
	}
	return p.FloorTokens
}
