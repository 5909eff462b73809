package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
	"resume-parser/internal/services"
)

type UploadHandler struct {
	candidateRepo  repositories.CandidateRepository
	storageService services.StorageService
	parser         services.ResumeParserService
	maxFileSize    int64
}

func NewUploadHandler(
	candidateRepo repositories.CandidateRepository,
	storageService services.StorageService,
	parser services.ResumeParserService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		candidateRepo:  candidateRepo,
		storageService: storageService,
		parser:         parser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /candidates/upload/. The resume is parsed inline;
// a parsing failure still answers 201 with parsing_status "failed".
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume_file")
	if err != nil {
		return fieldErrors(c, map[string][]string{
			"resume_file": {"No file was submitted."},
		})
	}

	if problems := validateFile(file, h.maxFileSize, services.SupportedResumeExtensions); len(problems) > 0 {
		return fieldErrors(c, map[string][]string{"resume_file": problems})
	}

	ctx := c.UserContext()

	name, err := h.storageService.SaveFile(ctx, file, services.FolderResumes, services.SupportedResumeExtensions)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	candidate := &models.Candidate{
		ResumeFile:    name,
		ParsingStatus: models.StatusPending,
	}
	if err := h.candidateRepo.Create(candidate); err != nil {
		// Cleanup uploaded file if database insert fails
		if delErr := h.storageService.DeleteFile(ctx, name); delErr != nil {
			log.Printf("⚠️  Failed to remove orphaned upload %s: %v", name, delErr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save candidate record",
		})
	}

	log.Printf("📥 Resume uploaded for candidate %d: %s", candidate.ID, file.Filename)

	response := models.UploadResponse{
		ID:           candidate.ID,
		ResumeFile:   mediaURL(c, h.storageService, name),
		CreatedAt:    candidate.CreatedAt,
		CandidateURL: fmt.Sprintf("%s/candidates/%d/", c.BaseURL(), candidate.ID),
	}

	saved, err := h.parser.ParseCandidate(ctx, candidate.ID)
	if err != nil {
		message := err.Error()
		response.ParsingStatus = string(models.StatusFailed)
		response.Message = "Resume uploaded but parsing failed"
		response.Error = &message
		return c.Status(fiber.StatusCreated).JSON(response)
	}

	response.ParsingStatus = string(saved.ParsingStatus)
	response.Message = "Resume uploaded and parsed successfully"
	return c.Status(fiber.StatusCreated).JSON(response)
}

// validateFile returns the messages for everything wrong with an upload.
func validateFile(file *multipart.FileHeader, maxFileSize int64, allowedExts []string) []string {
	var problems []string

	if file.Size == 0 {
		problems = append(problems, "The submitted file is empty.")
	}
	if maxFileSize > 0 && file.Size > maxFileSize {
		problems = append(problems, fmt.Sprintf("File too large. Max size: %d bytes", maxFileSize))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, a := range allowedExts {
		if ext != "" && ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		problems = append(problems, fmt.Sprintf("Unsupported file extension %q. Allowed extensions: %s",
			ext, strings.Join(allowedExts, ", ")))
	}

	return problems
}
