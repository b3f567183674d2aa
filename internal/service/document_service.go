package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"ai-docstruct-be/internal/dto"
	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/pkg/events"
	"ai-docstruct-be/pkg/exporter"
	"ai-docstruct-be/pkg/extractor"
	"ai-docstruct-be/pkg/llm/fallback"
	"ai-docstruct-be/pkg/prompt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	documentModule = "DOCUMENT_SERVICE"
	previewRunes   = 500
	previewMarker  = "..."
)

// TextExtractor is satisfied by *extractor.Extractor.
type TextExtractor interface {
	Extract(path string) extractor.Result
}

// CompletionInvoker is satisfied by *fallback.Invoker.
type CompletionInvoker interface {
	Invoke(ctx context.Context, prompt string) (fallback.Outcome, error)
}

type IDocumentService interface {
	ProcessBatch(ctx context.Context, docs []dto.UploadedDocument) (*dto.UploadResponse, error)
	Export(ctx context.Context, req *dto.DownloadRequest) (*exporter.Payload, error)
}

type documentService struct {
	extractor   TextExtractor
	invoker     CompletionInvoker
	exporter    *exporter.Exporter
	publisher   IPublisherService
	logger      logger.ILogger
	maxParallel int
}

func NewDocumentService(
	ext TextExtractor,
	invoker CompletionInvoker,
	exp *exporter.Exporter,
	publisher IPublisherService,
	log logger.ILogger,
	maxParallel int,
) IDocumentService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &documentService{
		extractor:   ext,
		invoker:     invoker,
		exporter:    exp,
		publisher:   publisher,
		logger:      log,
		maxParallel: maxParallel,
	}
}

// ProcessBatch runs every document through extract -> prompt -> invoke.
// Documents are handled concurrently; results keep the input order. A failing
// document never fails the batch.
func (s *documentService) ProcessBatch(ctx context.Context, docs []dto.UploadedDocument) (*dto.UploadResponse, error) {
	batchId := uuid.New()
	results := make([]dto.DocumentResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = s.processOne(gctx, batchId, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info(documentModule, "Batch processed", map[string]interface{}{
		"batch_id": batchId.String(),
		"files":    len(docs),
	})
	return &dto.UploadResponse{BatchId: batchId, Results: results}, nil
}

func (s *documentService) processOne(ctx context.Context, batchId uuid.UUID, doc dto.UploadedDocument) dto.DocumentResult {
	started := time.Now()
	extracted := s.extractor.Extract(doc.Path)
	display := extracted.Display()

	result := dto.DocumentResult{
		Filename:             doc.Filename,
		ExtractedTextPreview: Preview(display),
		CharCount:            utf8.RuneCountInString(extracted.Text),
	}

	if !extracted.OK() {
		// no prompt and no model call for a document we could not read
		result.AiResponse = display
		result.Status = dto.StatusExtractionError
		s.publishProcessed(ctx, batchId, result, time.Since(started))
		return result
	}

	result.GeneratedPrompt = prompt.Build(extracted.Text)

	outcome, err := s.invoker.Invoke(ctx, result.GeneratedPrompt)
	switch {
	case errors.Is(err, fallback.ErrNotConfigured):
		result.AiResponse = SimulatedResponse(doc.Filename, result.CharCount)
		result.Status = dto.StatusSimulated
	case err != nil:
		result.AiResponse = fmt.Sprintf("Error calling AI provider: %s", err.Error())
		result.Status = dto.StatusAIError
	default:
		result.AiResponse = outcome.Message()
		result.Model = outcome.Model
		result.Attempts = summarizeAttempts(outcome.Attempts)
		if outcome.OK() {
			result.Status = dto.StatusSuccess
		} else {
			result.Status = dto.StatusAIError
			s.logger.Warn(documentModule, "AI invocation failed", map[string]interface{}{
				"filename": doc.Filename,
				"outcome":  outcome.Kind.String(),
				"message":  result.AiResponse,
			})
		}
	}

	s.publishProcessed(ctx, batchId, result, time.Since(started))
	return result
}

func (s *documentService) Export(ctx context.Context, req *dto.DownloadRequest) (*exporter.Payload, error) {
	payload, err := s.exporter.Export(req.Content, req.Format, req.Filename)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.TypeDocumentExported, map[string]interface{}{
		"filename":   payload.Filename,
		"media_type": payload.MediaType,
		"bytes":      len(payload.Body),
		"pages":      payload.Pages,
	}))
	return payload, nil
}

func (s *documentService) publishProcessed(ctx context.Context, batchId uuid.UUID, result dto.DocumentResult, took time.Duration) {
	s.publish(ctx, events.New(events.TypeDocumentProcessed, map[string]interface{}{
		"batch_id":    batchId.String(),
		"filename":    result.Filename,
		"status":      result.Status,
		"model":       result.Model,
		"char_count":  result.CharCount,
		"attempts":    len(result.Attempts),
		"duration_ms": took.Milliseconds(),
	}))
}

func (s *documentService) publish(ctx context.Context, evt events.Event) {
	if s.publisher == nil {
		return
	}
	// events are auxiliary; a failed publish never fails the request
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(documentModule, "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

// Preview returns the first 500 runes of text followed by "...". The marker
// is always appended, even for short text.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text + previewMarker
	}
	runes := []rune(text)
	return string(runes[:previewRunes]) + previewMarker
}

// SimulatedResponse stands in for the model answer when no credential is configured.
func SimulatedResponse(filename string, charCount int) string {
	return fmt.Sprintf(`# Extracted Structure for %s (SIMULATION)

(No valid ANTHROPIC_API_KEY configured, so this is a simulated response.)

## Summary
The document contains %d characters.

## Mock Data Points
- **Category 1**: Simulation Data A
- **Category 2**: Simulation Data B
`, filename, charCount)
}

func summarizeAttempts(attempts []fallback.Attempt) []dto.AttemptSummary {
	if len(attempts) == 0 {
		return nil
	}
	out := make([]dto.AttemptSummary, len(attempts))
	for i, a := range attempts {
		out[i] = dto.AttemptSummary{
			Model:      a.Model,
			MaxTokens:  a.MaxTokens,
			Decision:   string(a.Decision),
			Error:      a.Err,
			DurationMs: a.Duration.Milliseconds(),
		}
	}
	return out
}
