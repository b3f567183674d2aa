package exporter

import "strings"

const ellipsis = "..."

// PageLayout holds the geometry of the manual PDF layout, in points, with the
// y axis pointing up from the bottom edge.
type PageLayout struct {
	Width      float64
	Height     float64
	Margin     float64
	LineHeight float64
	MaxChars   int
	FontSize   float64
}

// DefaultLayout is US Letter with a 40pt margin and 12pt lines.
func DefaultLayout() PageLayout {
	return PageLayout{
		Width:      612,
		Height:     792,
		Margin:     40,
		LineHeight: 12,
		MaxChars:   90,
		FontSize:   10,
	}
}

type PlacedLine struct {
	Text      string
	X         float64
	Y         float64
	Truncated bool
}

type Page struct {
	Lines []PlacedLine
}

// Top is the baseline of the first line on a page.
func (l PageLayout) Top() float64 {
	return l.Height - l.Margin
}

// LinesPerPage is how many lines fit before the page break predicate fires.
func (l PageLayout) LinesPerPage() int {
	if l.LineHeight <= 0 {
		return 0
	}
	n := 0
	for y := l.Top(); y >= l.Margin; y -= l.LineHeight {
		n++
	}
	return n
}

// TruncateLine cuts s to MaxChars runes and marks the cut with "...".
func (l PageLayout) TruncateLine(s string) (string, bool) {
	if l.MaxChars <= 0 {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= l.MaxChars {
		return s, false
	}
	return string(runes[:l.MaxChars]) + ellipsis, true
}

// Paginate places every newline-delimited line of content. Before a line is
// emitted, a cursor below the bottom margin closes the page and resets to
// Top. There is always at least one page.
func (l PageLayout) Paginate(content string) []Page {
	var (
		pages   []Page
		current Page
		y       = l.Top()
	)

	for _, line := range strings.Split(content, "\n") {
		if y < l.Margin {
			pages = append(pages, current)
			current = Page{}
			y = l.Top()
		}
		text, cut := l.TruncateLine(line)
		current.Lines = append(current.Lines, PlacedLine{
			Text:      text,
			X:         l.Margin,
			Y:         y,
			Truncated: cut,
		})
		y -= l.LineHeight
	}

	return append(pages, current)
}
