package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-parser/internal/models"
	"resume-parser/internal/services"
)

// mediaURL turns a storage name into an absolute URL for the response body.
func mediaURL(c *fiber.Ctx, storage services.StorageService, name string) string {
	url := storage.URL(name)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return c.BaseURL() + url
}

func optionalMediaURL(c *fiber.Ctx, storage services.StorageService, name *string) *string {
	if name == nil || *name == "" {
		return nil
	}
	url := mediaURL(c, storage, *name)
	return &url
}

func toCandidateDetail(c *fiber.Ctx, storage services.StorageService, candidate *models.Candidate) models.CandidateDetail {
	return models.CandidateDetail{
		ID:                   candidate.ID,
		ResumeFile:           mediaURL(c, storage, candidate.ResumeFile),
		CreatedAt:            candidate.CreatedAt,
		ParsedAt:             candidate.ParsedAt,
		ParsingStatus:        string(candidate.ParsingStatus),
		ParsingError:         candidate.ParsingError,
		ConfidenceScore:      candidate.ConfidenceScore,
		Name:                 candidate.Name,
		Email:                candidate.Email,
		Phone:                candidate.Phone,
		Location:             candidate.Location,
		LinkedInURL:          candidate.LinkedInURL,
		GitHubURL:            candidate.GitHubURL,
		Summary:              candidate.Summary,
		AadharDocument:       optionalMediaURL(c, storage, candidate.AadharDocument),
		PanDocument:          optionalMediaURL(c, storage, candidate.PanDocument),
		DocumentRequestEmail: candidate.DocumentRequestEmail,
		DocumentRequestedAt:  candidate.DocumentRequestedAt,
		Education:            nonNil(candidate.Education),
		Experience:           nonNil(candidate.Experience),
		Skills:               nonNil(candidate.Skills),
		Projects:             nonNil(candidate.Projects),
		Certifications:       nonNil(candidate.Certifications),
	}
}

func toCandidateListItem(candidate *models.Candidate) models.CandidateListItem {
	item := models.CandidateListItem{
		ID:            candidate.ID,
		Name:          candidate.Name,
		Email:         candidate.Email,
		ParsingStatus: string(candidate.ParsingStatus),
	}
	// Experience is preloaded most recent first.
	if len(candidate.Experience) > 0 {
		company := candidate.Experience[0].Company
		item.Company = &company
	}
	return item
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// candidateID parses the :id route parameter. Anything that is not a
// positive integer cannot name a candidate.
func candidateID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func candidateNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Candidate not found",
	})
}

// fieldErrors writes a 400 body keyed by form field.
func fieldErrors(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errs)
}
