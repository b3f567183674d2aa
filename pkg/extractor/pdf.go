package extractor

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads every page in order; each page's text is trimmed and
// followed by "\n".
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			sb.WriteString("\n")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		sb.WriteString(strings.TrimSpace(text))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
