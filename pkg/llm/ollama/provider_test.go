package ollama

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

func TestChat_MapsOptions(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"hi"},"done":true}`))
	}))
	defer srv.Close()

	text, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hello",
		llm.WithMaxTokens(4096), llm.WithTemperature(0), llm.WithSystem("sys"))
	require.NoError(t, err)

	assert.Equal(t, "hi", text)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, 4096, got.Options.NumPredict)
	assert.Equal(t, 0.0, got.Options.Temperature)
	assert.Equal(t, []ollamaMessage{{Role: "system", Content: "sys"}, {Role: "user", Content: "hello"}}, got.Messages)
}

func TestChat_MissingModelIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'mistral' not found, try pulling it first"}`))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "mistral").Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, llm.KindNotFound, llm.Classify(err))
	assert.Contains(t, err.Error(), "try pulling it first")
}
