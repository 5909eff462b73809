package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
	"resume-parser/internal/services"
)

// SupportedDocumentExtensions lists the identity document formats accepted.
var SupportedDocumentExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

type DocumentHandler struct {
	candidateRepo   repositories.CandidateRepository
	storageService  services.StorageService
	documentRequest services.DocumentRequestService
	maxFileSize     int64
}

func NewDocumentHandler(
	candidateRepo repositories.CandidateRepository,
	storageService services.StorageService,
	documentRequest services.DocumentRequestService,
	maxFileSize int64,
) *DocumentHandler {
	return &DocumentHandler{
		candidateRepo:   candidateRepo,
		storageService:  storageService,
		documentRequest: documentRequest,
		maxFileSize:     maxFileSize,
	}
}

type documentUpload struct {
	field  string
	folder string
	file   *multipart.FileHeader
	stored *string
}

// HandleSubmitDocuments handles POST /candidates/:id/submit-documents/
func (h *DocumentHandler) HandleSubmitDocuments(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return candidateNotFound(c)
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return candidateNotFound(c)
		}
		return err
	}

	uploads := []*documentUpload{
		{field: "aadhar_document", folder: services.FolderAadharDocuments},
		{field: "pan_document", folder: services.FolderPanDocuments},
	}

	var files map[string][]*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File
	}

	problems := map[string][]string{}
	submitted := 0
	for _, u := range uploads {
		headers := files[u.field]
		if len(headers) == 0 {
			continue
		}
		u.file = headers[0]
		submitted++

		if msgs := validateFile(u.file, h.maxFileSize, SupportedDocumentExtensions); len(msgs) > 0 {
			problems[u.field] = msgs
		}
	}

	if submitted == 0 {
		problems["non_field_errors"] = []string{"At least one of aadhar_document or pan_document is required."}
	}
	if len(problems) > 0 {
		return fieldErrors(c, problems)
	}

	ctx := c.UserContext()
	for _, u := range uploads {
		if u.file == nil {
			continue
		}
		name, err := h.storageService.SaveFile(ctx, u.file, u.folder, SupportedDocumentExtensions)
		if err != nil {
			h.discardStored(c, uploads)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s: %v", u.field, err),
			})
		}
		u.stored = &name
	}

	if err := h.candidateRepo.UpdateDocuments(id, uploads[0].stored, uploads[1].stored); err != nil {
		h.discardStored(c, uploads)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update candidate documents",
		})
	}

	// Replaced documents are no longer referenced.
	previous := map[string]*string{
		"aadhar_document": candidate.AadharDocument,
		"pan_document":    candidate.PanDocument,
	}
	for _, u := range uploads {
		if old := previous[u.field]; u.stored != nil && old != nil && *old != "" {
			if err := h.storageService.DeleteFile(ctx, *old); err != nil {
				log.Printf("⚠️  Failed to delete replaced %s %s: %v", u.field, *old, err)
			}
		}
	}

	log.Printf("🪪 Identity documents submitted for candidate %d", id)

	updated, err := h.candidateRepo.FindDetailByID(id)
	if err != nil {
		return err
	}
	return c.JSON(toCandidateDetail(c, h.storageService, updated))
}

// discardStored removes files saved by a request that could not be recorded.
func (h *DocumentHandler) discardStored(c *fiber.Ctx, uploads []*documentUpload) {
	for _, u := range uploads {
		if u.stored == nil {
			continue
		}
		if err := h.storageService.DeleteFile(c.UserContext(), *u.stored); err != nil {
			log.Printf("⚠️  Failed to remove orphaned %s %s: %v", u.field, *u.stored, err)
		}
	}
}

// HandleRequestDocuments handles POST /candidates/:id/request-documents/
func (h *DocumentHandler) HandleRequestDocuments(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return candidateNotFound(c)
	}

	email, err := h.documentRequest.RequestDocuments(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return candidateNotFound(c)
		}
		log.Printf("❌ Failed to draft document request for candidate %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(models.DocumentRequestResponse{
		Success: true,
		Message: "Document request email generated successfully",
		Email:   *email,
	})
}
