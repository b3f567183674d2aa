package fallback

import (
	"fmt"
	"time"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRejected
	OutcomeExhausted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	default:
		return "exhausted"
	}
}

// Attempt records a single completion request made while walking the table.
type Attempt struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Decision  Decision      `json:"decision"`
	Err       string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Outcome is produced once per invocation chain.
type Outcome struct {
	Kind OutcomeKind

	// Success
	Text  string
	Model string

	// Rejected: the chain was aborted on Model with Reason.
	Reason    string
	Retryable bool

	// Exhausted
	LastError error

	Attempts []Attempt
}

// Message renders the outcome as the text handed back to callers.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeSuccess:
		return o.Text
	case OutcomeRejected:
		return fmt.Sprintf("Error with model %s: %s", o.Model, o.Reason)
	default:
		last := "none"
		if o.LastError != nil {
			last = o.LastError.Error()
		}
		return fmt.Sprintf("Error: no working model found. Last error: %s", last)
	}
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}
