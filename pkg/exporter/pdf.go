package exporter

import (
	"bytes"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	pdfFont     = "Helvetica"
	replacement = '?'
)

type renderedPDF struct {
	body     []byte
	pages    int
	replaced int
}

// renderPDF draws the paginated lines with the core Helvetica font. fpdf
// measures y from the top edge, so layout coordinates are flipped.
func (e *Exporter) renderPDF(content string) (*renderedPDF, error) {
	layout := e.layout
	pages := layout.Paginate(content)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: layout.Width, Ht: layout.Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(e.compress)
	doc.SetFont(pdfFont, "", layout.FontSize)

	out := &renderedPDF{pages: len(pages)}
	for _, page := range pages {
		doc.AddPage()
		for _, line := range page.Lines {
			text, replaced := encodeWinAnsi(line.Text)
			out.replaced += replaced
			if text == "" {
				continue
			}
			doc.Text(line.X, layout.Height-line.Y, text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	out.body = buf.Bytes()
	return out, nil
}

// encodeWinAnsi maps s into Windows-1252, the encoding of the PDF core
// fonts. Runes without a glyph become '?' and are counted.
func encodeWinAnsi(s string) (string, int) {
	buf := make([]byte, 0, len(s))
	replaced := 0
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = replacement
			replaced++
		}
		buf = append(buf, b)
	}
	return string(buf), replaced
}
