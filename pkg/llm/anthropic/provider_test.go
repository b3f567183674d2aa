package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-docstruct-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SendsMessagesRequest(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, APIVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"m","content":[{"type":"text","text":"# Title"}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("secret", srv.URL, "default-model", time.Second)
	text, err := p.Generate(context.Background(), "hello",
		llm.WithModel("claude-x"), llm.WithMaxTokens(8192), llm.WithTemperature(0))
	require.NoError(t, err)

	assert.Equal(t, "# Title", text)
	assert.Equal(t, "claude-x", got.Model)
	assert.Equal(t, 8192, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	assert.Equal(t, 0.0, *got.Temperature)
	assert.Equal(t, []llm.Message{{Role: "user", Content: "hello"}}, got.Messages)
}

func TestChat_LiftsSystemMessages(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("k", srv.URL, "m", time.Second)
	_, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
	})
	require.NoError(t, err)

	assert.Equal(t, "be terse", got.System)
	assert.Equal(t, []llm.Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}, got.Messages)
	assert.Equal(t, 4096, got.MaxTokens)
}

func TestGenerate_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   llm.ErrorKind
	}{
		{"not found", http.StatusNotFound, `{"type":"error","error":{"type":"not_found_error","message":"model: claude-3-opus"}}`, llm.KindNotFound},
		{"token ceiling", http.StatusBadRequest, `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens: 8192 > 4096"}}`, llm.KindTokenCeiling},
		{"bad request", http.StatusBadRequest, `{"type":"error","error":{"type":"invalid_request_error","message":"messages: empty"}}`, llm.KindBadRequest},
		{"overloaded", 529, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, llm.KindFatal},
		{"non json", http.StatusBadGateway, `bad gateway`, llm.KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewAnthropicProvider("k", srv.URL, "m", time.Second).Generate(context.Background(), "p")
			require.Error(t, err)

			var apiErr *llm.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, llm.Classify(err))
		})
	}
}

func TestGenerate_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicProvider("k", srv.URL, "m", time.Second).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
