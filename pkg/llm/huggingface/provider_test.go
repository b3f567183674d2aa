package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-docstruct-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_OpenAICompatible(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer hf_key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"answer"}}]}`))
	}))
	defer srv.Close()

	text, err := NewHuggingFaceProvider("hf_key", srv.URL, "qwen").Generate(context.Background(), "q", llm.WithMaxTokens(8192))
	require.NoError(t, err)
	assert.Equal(t, "answer", text)
	assert.Equal(t, "qwen", got.Model)
	assert.Equal(t, 8192, got.MaxTokens)
}

func TestChat_BadRequestCarriesProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"max_tokens is too large","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewHuggingFaceProvider("k", srv.URL, "qwen").Generate(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, llm.KindTokenCeiling, llm.Classify(err))
}

func TestChat_NoChoicesIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewHuggingFaceProvider("k", srv.URL, "qwen").Generate(context.Background(), "q")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
