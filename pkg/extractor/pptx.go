package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

var slideFileRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPPTX walks slides in presentation order, then the top-level shapes
// of each slide in document order. Every autoshape contributes its text
// followed by "\n"; a shape without a text body contributes a bare "\n".
func extractPPTX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	slides, err := slideOrder(&zr.Reader)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, name := range slides {
		content, err := readZipEntry(&zr.Reader, name)
		if err != nil {
			return "", err
		}
		shapes, err := parseSlideShapes(content)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		for _, text := range shapes {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// slideOrder resolves ppt/presentation.xml's slide list through its
// relationships; packages without one fall back to slideN numbering.
func slideOrder(zr *zip.Reader) ([]string, error) {
	if !hasZipEntry(zr, "ppt/presentation.xml") {
		return nil, errors.New("ppt/presentation.xml not found in archive")
	}

	ordered, err := slidesFromPresentation(zr)
	if err == nil && len(ordered) > 0 {
		return ordered, nil
	}

	type numbered struct {
		name string
		n    int
	}
	var found []numbered
	for _, f := range zr.File {
		m := slideFileRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		found = append(found, numbered{name: f.Name, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names, nil
}

func slidesFromPresentation(zr *zip.Reader) ([]string, error) {
	presContent, err := readZipEntry(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	relsContent, err := readZipEntry(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	var pres presentationXML
	if err := xml.Unmarshal(presContent, &pres); err != nil {
		return nil, fmt.Errorf("parse presentation.xml: %w", err)
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(relsContent, &rels); err != nil {
		return nil, fmt.Errorf("parse presentation.xml.rels: %w", err)
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		targets[rel.ID] = rel.Target
	}

	names := make([]string, 0, len(pres.SlideIDs))
	for _, id := range pres.SlideIDs {
		target, ok := targets[id.RelID]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s not found", id.RelID)
		}
		names = append(names, resolvePartName("ppt", target))
	}
	return names, nil
}

// resolvePartName turns a relationship target into a zip entry name.
func resolvePartName(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(base, target))
}

// parseSlideShapes returns the text of each top-level autoshape, "" when it
// has no text body.
func parseSlideShapes(content []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		stack      elementStack
		shapes     []string
		paragraphs []string
		para       strings.Builder
		shapeDepth = -1
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse slide: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack.push(t.Name.Local)
			if shapeDepth < 0 {
				if t.Name.Local == "sp" && stack.parent() == "spTree" {
					shapeDepth = len(stack)
					paragraphs = paragraphs[:0]
				}
				continue
			}
			switch t.Name.Local {
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "br":
				para.WriteString("\n")
			}

		case xml.CharData:
			if shapeDepth >= 0 && inText {
				para.Write(t)
			}

		case xml.EndElement:
			if shapeDepth >= 0 {
				switch {
				case t.Name.Local == "t":
					inText = false
				case t.Name.Local == "p" && stack.parent() == "txBody":
					paragraphs = append(paragraphs, para.String())
				case len(stack) == shapeDepth && t.Name.Local == "sp":
					shapes = append(shapes, strings.Join(paragraphs, "\n"))
					shapeDepth = -1
				}
			}
			stack.pop()
		}
	}

	return shapes, nil
}
