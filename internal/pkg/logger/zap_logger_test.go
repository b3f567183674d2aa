package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log := NewIsolatedLogger(path)

	log.Debug("EXTRACTOR", "dropped below info", nil)
	log.Info("EXTRACTOR", "Text extracted", map[string]interface{}{"bytes": 12})
	log.Error("INVOKER", "Attempt failed", map[string]interface{}{"error": "boom"})
	require.NoError(t, log.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.Len(t, entries, 2)

	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "EXTRACTOR", entries[0]["module"])
	assert.Equal(t, "Text extracted", entries[0]["message"])
	assert.Equal(t, float64(12), entries[0]["details"].(map[string]interface{})["bytes"])

	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error_ref"])
}

func TestNopLogger(t *testing.T) {
	var log ILogger = NewNopLogger()
	assert.NotPanics(t, func() {
		log.Info("ANY", "ignored", nil)
		log.Warn("ANY", "ignored", map[string]interface{}{"k": "v"})
	})
}
