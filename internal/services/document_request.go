package services

import (
	"context"
	"fmt"
	"log"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
)

type DocumentRequestService interface {
	RequestDocuments(ctx context.Context, candidateID uint) (*models.DocumentRequestEmail, error)
}

type documentRequestService struct {
	candidateRepo repositories.CandidateRepository
	gemini        GeminiService
	prompts       *PromptBuilder
	validator     *SchemaValidator
}

func NewDocumentRequestService(
	candidateRepo repositories.CandidateRepository,
	gemini GeminiService,
	prompts *PromptBuilder,
	validator *SchemaValidator,
) DocumentRequestService {
	return &documentRequestService{
		candidateRepo: candidateRepo,
		gemini:        gemini,
		prompts:       prompts,
		validator:     validator,
	}
}

type draftEmail struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// RequestDocuments drafts an identity-document request email for the
// candidate and stores it as "Subject: ...\n\n<body>".
func (d *documentRequestService) RequestDocuments(ctx context.Context, candidateID uint) (*models.DocumentRequestEmail, error) {
	candidate, err := d.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, err
	}

	response, err := d.gemini.GenerateText(ctx, d.prompts.BuildDocumentRequestPrompt(candidate.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to generate document request: %w", err)
	}

	obj, err := RecoverJSON(response)
	if err != nil {
		return nil, err
	}

	var draft draftEmail
	if err := decodeRecord(obj, &draft, "email"); err != nil {
		return nil, err
	}
	if err := d.validator.check("email", &draft); err != nil {
		return nil, err
	}

	formatted := fmt.Sprintf("Subject: %s\n\n%s", draft.Subject, draft.Body)
	if err := d.candidateRepo.SaveDocumentRequest(candidateID, formatted); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	log.Printf("📧 Document request drafted for candidate %d", candidateID)

	return &models.DocumentRequestEmail{
		Subject: draft.Subject,
		Body:    draft.Body,
	}, nil
}
