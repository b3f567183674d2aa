package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ai-docstruct-be/internal/bootstrap"
	"ai-docstruct-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, landing string) *Server {
	t.Helper()
	cfg := config.FromEnv()
	cfg.App.LogFilePath = ""
	cfg.App.NatsURL = ""
	cfg.App.LandingPage = landing
	cfg.App.UploadDir = t.TempDir()
	cfg.Ai.RedisURL = ""
	cfg.Keys.Anthropic = ""

	container := bootstrap.NewContainer(cfg)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["message"])
}

func TestLandingPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>docstruct</h1>"), 0o644))
	srv := newTestServer(t, path)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<h1>docstruct</h1>", string(raw))
}

func TestLandingPage_Missing(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "absent.html"))

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest("OPTIONS", "/api/download", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := srv.GetApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
