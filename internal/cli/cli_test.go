package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"ai-docstruct-be/internal/bootstrap"
	"ai-docstruct-be/internal/config"
	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/exporter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) {
	t.Helper()
	cfg = config.FromEnv()
	cfg.Keys.Anthropic = ""
	cfg.Ai.LLMProvider = "anthropic"
	cfg.Ai.RedisURL = ""
	sysLog = logger.NewNopLogger()
	pipeline = bootstrap.NewPipeline(cfg, sysLog)

	t.Cleanup(func() {
		cfg, sysLog, pipeline = nil, nil, nil
		exportFormat, exportOut, exportName = "md", ".", ""
		processJSON = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return buf.String(), err
}

func writeDocx(t *testing.T, path, body string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestExtractCmd(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "memo.docx")
	writeDocx(t, path, `<w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World</w:t></w:r></w:p>`)

	out, err := run(t, "extract", path)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", out)
}

func TestExtractCmd_Unsupported(t *testing.T) {
	setupCLI(t)
	out, err := run(t, "extract", "notes.rtf")
	require.NoError(t, err)
	assert.Equal(t, "Unsupported file format: .rtf", out)
}

func TestProcessCmd_Simulated(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "memo.docx")
	writeDocx(t, path, `<w:p><w:r><w:t>abc</w:t></w:r></w:p>`)

	out, err := run(t, "process", path)
	require.NoError(t, err)
	assert.Contains(t, out, "== memo.docx [simulated] ==")
	assert.Contains(t, out, "The document contains 3 characters.")
}

func TestExportCmd(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "answer.md")
	require.NoError(t, os.WriteFile(input, []byte("# Result"), 0o644))

	outDir := filepath.Join(dir, "out")
	out, err := run(t, "export", input, "--format", "txt", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "answer.txt")

	data, err := os.ReadFile(filepath.Join(outDir, "answer.txt"))
	require.NoError(t, err)
	assert.Equal(t, "# Result", string(data))
}

func TestExportCmd_UnsupportedFormat(t *testing.T) {
	setupCLI(t)
	input := filepath.Join(t.TempDir(), "answer.md")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))

	_, err := run(t, "export", input, "--format", "html", "--out", t.TempDir())
	assert.ErrorIs(t, err, exporter.ErrUnsupportedFormat)
}

func TestEventsCmd_RequiresNats(t *testing.T) {
	setupCLI(t)
	cfg.App.NatsURL = ""
	_, err := run(t, "events")
	assert.EqualError(t, err, "NATS_URL is not set")
}
