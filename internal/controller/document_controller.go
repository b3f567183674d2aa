package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"ai-docstruct-be/internal/dto"
	"ai-docstruct-be/internal/pkg/logger"
	"ai-docstruct-be/internal/pkg/serverutils"
	"ai-docstruct-be/internal/service"
	"ai-docstruct-be/pkg/exporter"

	"github.com/gofiber/fiber/v2"
)

const controllerModule = "DOCUMENT_CONTROLLER"

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	uploadDir       string
	logger          logger.ILogger
}

func NewDocumentController(documentService service.IDocumentService, uploadDir string, log logger.ILogger) IDocumentController {
	return &documentController{
		documentService: documentService,
		uploadDir:       uploadDir,
		logger:          log,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Post("/download", c.Download)
}

// StatusForError maps domain errors to HTTP status codes for ErrorHandlerMiddleware.
func StatusForError(err error) (int, bool) {
	if errors.Is(err, exporter.ErrUnsupportedFormat) {
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form with field 'files'")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files uploaded")
	}

	docs := make([]dto.UploadedDocument, 0, len(files))
	defer func() {
		for _, doc := range docs {
			if err := os.Remove(doc.Path); err != nil && !os.IsNotExist(err) {
				c.logger.Warn(controllerModule, "Failed to remove temp file", map[string]interface{}{
					"path":  doc.Path,
					"error": err.Error(),
				})
			}
		}
	}()

	for _, fh := range files {
		path, err := c.spool(ctx, fh)
		if err != nil {
			return err
		}
		docs = append(docs, dto.UploadedDocument{
			Filename: filepath.Base(fh.Filename),
			Path:     path,
		})
	}

	res, err := c.documentService.ProcessBatch(ctx.UserContext(), docs)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Files processed", res))
}

// spool writes an upload to a temp file that keeps the original extension,
// which drives extractor dispatch.
func (c *documentController) spool(ctx *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	tmp, err := os.CreateTemp(c.uploadDir, "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	if err := ctx.SaveFile(fh, path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save upload %s: %w", fh.Filename, err)
	}
	return path, nil
}

func (c *documentController) Download(ctx *fiber.Ctx) error {
	var req dto.DownloadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	payload, err := c.documentService.Export(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, payload.MediaType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", payload.Filename))
	return ctx.Status(fiber.StatusOK).Send(payload.Body)
}
