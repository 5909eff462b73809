package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
	"resume-parser/internal/services"
)

type CandidateHandler struct {
	candidateRepo  repositories.CandidateRepository
	storageService services.StorageService
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	storageService services.StorageService,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo:  candidateRepo,
		storageService: storageService,
	}
}

// HandleList handles GET /candidates/
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list candidates",
		})
	}

	items := make([]models.CandidateListItem, 0, len(candidates))
	for i := range candidates {
		items = append(items, toCandidateListItem(&candidates[i]))
	}

	return c.JSON(items)
}

// HandleGet handles GET /candidates/:id/
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := candidateID(c)
	if !ok {
		return candidateNotFound(c)
	}

	candidate, err := h.candidateRepo.FindDetailByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return candidateNotFound(c)
		}
		return err
	}

	return c.JSON(toCandidateDetail(c, h.storageService, candidate))
}

// HandleStatus handles GET /candidates/:id/status/
func (h *CandidateHandler) HandleStatus(c *fiber.Ctx) error {
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

	return c.JSON(models.StatusResponse{
		ID:            candidate.ID,
		ParsingStatus: string(candidate.ParsingStatus),
		ParsedAt:      candidate.ParsedAt,
		ParsingError:  candidate.ParsingError,
	})
}

// HandleDelete handles DELETE /candidates/:id/ and removes the stored files
// once the rows are gone.
func (h *CandidateHandler) HandleDelete(c *fiber.Ctx) error {
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

	if err := h.candidateRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrCandidateNotFound) {
			return candidateNotFound(c)
		}
		return err
	}

	files := []string{candidate.ResumeFile}
	for _, doc := range []*string{candidate.AadharDocument, candidate.PanDocument} {
		if doc != nil && *doc != "" {
			files = append(files, *doc)
		}
	}
	for _, name := range files {
		if err := h.storageService.DeleteFile(c.UserContext(), name); err != nil {
			log.Printf("⚠️  Failed to delete %s for candidate %d: %v", name, id, err)
		}
	}

	log.Printf("🗑️  Deleted candidate %d", id)
	return c.SendStatus(fiber.StatusNoContent)
}
