// Package exporter renders result text into downloadable payloads.
package exporter

import (
	"errors"
	"fmt"
	"strings"

	"ai-docstruct-be/internal/pkg/logger"
)

const (
	logModule       = "EXPORTER"
	DefaultFilename = "result"
)

// ErrUnsupportedFormat is an invalid-argument error; HTTP callers map it to 400.
var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatPDF      Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatText, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// MediaType is the Content-Type sent with the payload.
func (f Format) MediaType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown"
	case FormatText:
		return "text/plain"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

type Payload struct {
	Body      []byte
	MediaType string
	Filename  string
	// Pages is only set for page-oriented formats.
	Pages int
}

type Option func(*Exporter)

func WithLayout(layout PageLayout) Option {
	return func(e *Exporter) {
		e.layout = layout
	}
}

func WithCompression(enabled bool) Option {
	return func(e *Exporter) {
		e.compress = enabled
	}
}

type Exporter struct {
	logger   logger.ILogger
	layout   PageLayout
	compress bool
}

func New(log logger.ILogger, opts ...Option) *Exporter {
	e := &Exporter{
		logger:   log,
		layout:   DefaultLayout(),
		compress: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) Layout() PageLayout {
	return e.layout
}

// Export builds the payload for content. filename carries no extension; the
// format's extension is appended.
func (e *Exporter) Export(content, format, filename string) (*Payload, error) {
	f, err := ParseFormat(format)
	if err != nil {
		e.logger.Warn(logModule, "Rejected export request", map[string]interface{}{
			"format": format,
		})
		return nil, err
	}

	if strings.TrimSpace(filename) == "" {
		filename = DefaultFilename
	}

	payload := &Payload{
		MediaType: f.MediaType(),
		Filename:  filename + "." + string(f),
	}

	switch f {
	case FormatPDF:
		doc, err := e.renderPDF(content)
		if err != nil {
			e.logger.Error(logModule, "PDF rendering failed", map[string]interface{}{
				"filename": payload.Filename,
				"error":    err.Error(),
			})
			return nil, err
		}
		payload.Body = doc.body
		payload.Pages = doc.pages
		if doc.replaced > 0 {
			e.logger.Warn(logModule, "Characters outside the PDF font were replaced", map[string]interface{}{
				"filename": payload.Filename,
				"replaced": doc.replaced,
			})
		}
	default:
		payload.Body = []byte(content)
	}

	e.logger.Info(logModule, "Export generated", map[string]interface{}{
		"filename": payload.Filename,
		"format":   string(f),
		"bytes":    len(payload.Body),
		"pages":    payload.Pages,
	})
	return payload, nil
}
