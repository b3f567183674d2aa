package exporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return strings.Join(lines, "\n")
}

func TestLinesPerPage_Letter(t *testing.T) {
	assert.Equal(t, 60, DefaultLayout().LinesPerPage())
}

func TestPaginate(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name      string
		content   string
		wantPages []int
	}{
		{"empty content still yields a page", "", []int{1}},
		{"single line", "hello", []int{1}},
		{"exactly one page", nLines(60), []int{60}},
		{"one line over", nLines(61), []int{60, 1}},
		{"three pages", nLines(125), []int{60, 60, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := layout.Paginate(tt.content)
			require.Len(t, pages, len(tt.wantPages))
			for i, want := range tt.wantPages {
				assert.Len(t, pages[i].Lines, want, "page %d", i)
			}
		})
	}
}

func TestPaginate_CursorPositions(t *testing.T) {
	layout := DefaultLayout()
	pages := layout.Paginate(nLines(61))

	first := pages[0].Lines
	assert.Equal(t, 752.0, first[0].Y)
	assert.Equal(t, 740.0, first[1].Y)
	assert.Equal(t, 44.0, first[59].Y)
	assert.Equal(t, 40.0, first[0].X)

	// the cursor resets to the top margin on a new page
	assert.Equal(t, 752.0, pages[1].Lines[0].Y)
	for _, page := range pages {
		for _, line := range page.Lines {
			assert.GreaterOrEqual(t, line.Y, layout.Margin)
		}
	}
}

func TestTruncateLine(t *testing.T) {
	layout := DefaultLayout()

	exact := strings.Repeat("a", 90)
	got, cut := layout.TruncateLine(exact)
	assert.Equal(t, exact, got)
	assert.False(t, cut)

	got, cut = layout.TruncateLine(strings.Repeat("b", 91))
	assert.Equal(t, strings.Repeat("b", 90)+"...", got)
	assert.True(t, cut)

	// budget counts runes, not bytes
	wide := strings.Repeat("é", 95)
	got, cut = layout.TruncateLine(wide)
	assert.True(t, cut)
	assert.Equal(t, strings.Repeat("é", 90)+"...", got)
}

func TestPaginate_MarksTruncatedLines(t *testing.T) {
	pages := DefaultLayout().Paginate("short\n" + strings.Repeat("x", 120))
	require.Len(t, pages, 1)
	assert.False(t, pages[0].Lines[0].Truncated)
	assert.True(t, pages[0].Lines[1].Truncated)
	assert.Equal(t, strings.Repeat("x", 90)+"...", pages[0].Lines[1].Text)
}
