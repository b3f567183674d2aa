// Package extractor turns uploaded office documents into plain text.
//
// Extraction never fails outright: every call yields a Result, and parser
// failures are carried in Result.Err so the pipeline can branch on them.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"ai-docstruct-be/internal/pkg/logger"
)

const logModule = "EXTRACTOR"

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatPPTX Format = "pptx"
	FormatXLSX Format = "xlsx"
)

// Label is the upper-case name used in error messages.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

type ErrorKind string

const (
	KindUnsupported ErrorKind = "unsupported_format"
	KindParse       ErrorKind = "parse_error"
)

type Error struct {
	Kind    ErrorKind
	Format  Format
	Ext     string
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindUnsupported {
		return fmt.Sprintf("Unsupported file format: %s", e.Ext)
	}
	return fmt.Sprintf("Error extracting %s: %s", e.Format.Label(), e.Message)
}

// Result is always produced, even when extraction failed.
type Result struct {
	Filename string
	Ext      string
	Format   Format
	Text     string
	Err      *Error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Len is the byte length of the extracted text.
func (r Result) Len() int {
	return len(r.Text)
}

// Display returns the extracted text, or the error rendered as text.
func (r Result) Display() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Text
}

type extractFunc func(path string) (string, error)

type Extractor struct {
	formats map[string]Format
	funcs   map[Format]extractFunc
	logger  logger.ILogger
}

func New(log logger.ILogger) *Extractor {
	return &Extractor{
		formats: map[string]Format{
			".pdf":  FormatPDF,
			".docx": FormatDOCX,
			".pptx": FormatPPTX,
			".xlsx": FormatXLSX,
		},
		funcs: map[Format]extractFunc{
			FormatPDF:  extractPDF,
			FormatDOCX: extractDOCX,
			FormatPPTX: extractPPTX,
			FormatXLSX: extractXLSX,
		},
		logger: log,
	}
}

// Supported reports whether ext (with leading dot, any case) has an extractor.
func (e *Extractor) Supported(ext string) bool {
	_, ok := e.formats[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions lists the recognised extensions.
func (e *Extractor) SupportedExtensions() []string {
	exts := make([]string, 0, len(e.formats))
	for ext := range e.formats {
		exts = append(exts, ext)
	}
	return exts
}

// Extract dispatches on the lower-cased extension of path.
func (e *Extractor) Extract(path string) Result {
	ext := strings.ToLower(filepath.Ext(path))
	res := Result{Filename: filepath.Base(path), Ext: ext}

	format, ok := e.formats[ext]
	if !ok {
		res.Err = &Error{Kind: KindUnsupported, Ext: ext}
		e.logger.Warn(logModule, "Unsupported file format", map[string]interface{}{
			"filename": res.Filename,
			"ext":      ext,
		})
		return res
	}
	res.Format = format

	text, err := runGuarded(e.funcs[format], path)
	if err != nil {
		res.Err = &Error{Kind: KindParse, Format: format, Ext: ext, Message: err.Error()}
		e.logger.Error(logModule, "Extraction failed", map[string]interface{}{
			"filename": res.Filename,
			"format":   string(format),
			"error":    err.Error(),
		})
		return res
	}

	res.Text = text
	e.logger.Info(logModule, "Text extracted", map[string]interface{}{
		"filename": res.Filename,
		"format":   string(format),
		"bytes":    res.Len(),
	})
	return res
}

// ExtractText is the text-only contract: content on success, otherwise
// "Unsupported file format: <ext>" or "Error extracting <FORMAT>: <message>".
func (e *Extractor) ExtractText(path string) string {
	return e.Extract(path).Display()
}

// runGuarded converts parser panics into errors.
func runGuarded(fn extractFunc, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(path)
}
