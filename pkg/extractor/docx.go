package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// extractDOCX joins the body-level paragraphs of word/document.xml with "\n".
// Table cells, headers and footers are not part of the body paragraphs.
func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	content, err := readZipEntry(&zr.Reader, "word/document.xml")
	if err != nil {
		return "", err
	}

	paragraphs, err := parseDocxParagraphs(content)
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

func parseDocxParagraphs(content []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		stack      elementStack
		paragraphs []string
		current    strings.Builder
		paraDepth  = -1 // stack depth of the open body paragraph
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack.push(t.Name.Local)
			if paraDepth < 0 {
				if t.Name.Local == "p" && stack.parent() == "body" {
					paraDepth = len(stack)
					current.Reset()
				}
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				if stack.parent() == "r" {
					current.WriteString("\t")
				}
			case "br", "cr":
				if stack.parent() == "r" {
					current.WriteString("\n")
				}
			}

		case xml.CharData:
			if paraDepth >= 0 && inText {
				current.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
			if paraDepth >= 0 && len(stack) == paraDepth && t.Name.Local == "p" {
				paragraphs = append(paragraphs, current.String())
				paraDepth = -1
			}
			stack.pop()
		}
	}

	return paragraphs, nil
}
