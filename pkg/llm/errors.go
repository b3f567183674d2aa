package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmptyResponse is returned when a model answers without any text content.
var ErrEmptyResponse = errors.New("model returned no content")

// ErrorKind groups provider failures by how a caller should react to them.
type ErrorKind int

const (
	// KindFatal covers transport failures, auth errors, rate limits and server errors.
	KindFatal ErrorKind = iota
	// KindNotFound means the requested model does not exist for this account.
	KindNotFound
	// KindTokenCeiling is a bad request caused by the max_tokens value.
	KindTokenCeiling
	// KindBadRequest is any other request the provider refused as malformed.
	KindBadRequest
	// KindEmpty means the call succeeded but carried no text.
	KindEmpty
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTokenCeiling:
		return "token_ceiling"
	case KindBadRequest:
		return "bad_request"
	case KindEmpty:
		return "empty"
	default:
		return "fatal"
	}
}

// APIError is the error returned by providers for non-2xx responses.
type APIError struct {
	Provider   string
	StatusCode int
	Type       string // provider error type, e.g. "not_found_error"
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s api error (status %d, %s): %s", e.Provider, e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Kind classifies the error from its status code, type and message.
func (e *APIError) Kind() ErrorKind {
	switch {
	case e.StatusCode == http.StatusNotFound || e.Type == "not_found_error":
		return KindNotFound
	case e.StatusCode == http.StatusBadRequest || e.Type == "invalid_request_error":
		if strings.Contains(e.Message, "max_tokens") {
			return KindTokenCeiling
		}
		return KindBadRequest
	default:
		return KindFatal
	}
}

// Classify returns the ErrorKind of any error produced by a provider call.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindFatal
	}
	if errors.Is(err, ErrEmptyResponse) {
		return KindEmpty
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind()
	}
	return KindFatal
}
