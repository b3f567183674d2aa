package dto

import (
	"github.com/google/uuid"
)

const (
	StatusSuccess         = "success"
	StatusSimulated       = "simulated"
	StatusExtractionError = "extraction_error"
	StatusAIError         = "ai_error"
)

// UploadedDocument is one file of an upload batch, already spooled to disk.
type UploadedDocument struct {
	Filename string
	Path     string
}

type AttemptSummary struct {
	Model      string `json:"model"`
	MaxTokens  int    `json:"max_tokens"`
	Decision   string `json:"decision"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type DocumentResult struct {
	Filename             string           `json:"filename"`
	ExtractedTextPreview string           `json:"extracted_text_preview"`
	GeneratedPrompt      string           `json:"generated_prompt"`
	AiResponse           string           `json:"ai_response"`
	Model                string           `json:"model,omitempty"`
	Status               string           `json:"status"`
	CharCount            int              `json:"char_count"`
	Attempts             []AttemptSummary `json:"attempts,omitempty"`
}

type UploadResponse struct {
	BatchId uuid.UUID        `json:"batch_id"`
	Results []DocumentResult `json:"results"`
}

type DownloadRequest struct {
	Content  string `json:"content"`
	Format   string `json:"format" validate:"required"`
	Filename string `json:"filename" validate:"max=200"`
}
