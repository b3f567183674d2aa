package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindFatal},
		{"plain", errors.New("boom"), KindFatal},
		{"empty", fmt.Errorf("wrapped: %w", ErrEmptyResponse), KindEmpty},
		{"404", &APIError{StatusCode: http.StatusNotFound}, KindNotFound},
		{"not_found type", &APIError{StatusCode: 200, Type: "not_found_error"}, KindNotFound},
		{"ceiling", &APIError{StatusCode: http.StatusBadRequest, Message: "max_tokens: 8192 > 4096"}, KindTokenCeiling},
		{"bad request", &APIError{StatusCode: http.StatusBadRequest, Message: "prompt too long"}, KindBadRequest},
		{"wrapped api error", fmt.Errorf("call: %w", &APIError{StatusCode: http.StatusNotFound}), KindNotFound},
		{"rate limit", &APIError{StatusCode: http.StatusTooManyRequests}, KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Provider: "anthropic", StatusCode: 404, Type: "not_found_error", Message: "model: x"}
	want := "anthropic api error (status 404, not_found_error): model: x"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestApplyOptions(t *testing.T) {
	opts := ApplyOptions(Options{Model: "base", MaxTokens: 10}, WithModel("override"), WithTemperature(0))
	if opts.Model != "override" || opts.MaxTokens != 10 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.TemperatureOr(0.7) != 0 {
		t.Errorf("explicit zero temperature lost")
	}
	if (&Options{}).TemperatureOr(0.7) != 0.7 {
		t.Errorf("fallback temperature not applied")
	}
}
