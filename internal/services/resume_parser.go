package services

import (
	"context"
	"fmt"
	"log"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
)

type ResumeParserService interface {
	ParseCandidate(ctx context.Context, candidateID uint) (*models.Candidate, error)
}

type resumeParserService struct {
	candidateRepo repositories.CandidateRepository
	storage       StorageService
	extractor     TextExtractor
	strategy      ExtractionStrategy
	writer        PersistenceWriter
}

func NewResumeParserService(
	candidateRepo repositories.CandidateRepository,
	storage StorageService,
	extractor TextExtractor,
	strategy ExtractionStrategy,
	writer PersistenceWriter,
) ResumeParserService {
	return &resumeParserService{
		candidateRepo: candidateRepo,
		storage:       storage,
		extractor:     extractor,
		strategy:      strategy,
		writer:        writer,
	}
}

// ParseCandidate runs extraction, the LLM strategy and persistence inline.
// Any failure leaves the candidate in the failed state with the error text.
func (p *resumeParserService) ParseCandidate(ctx context.Context, candidateID uint) (*models.Candidate, error) {
	if err := p.candidateRepo.UpdateStatus(candidateID, models.StatusProcessing); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	candidate, err := p.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, p.fail(candidateID, err)
	}

	log.Printf("🔄 Parsing resume for candidate %d (%s strategy)", candidateID, p.strategy.Name())

	filePath, cleanup, err := p.storage.LocalPath(ctx, candidate.ResumeFile)
	if err != nil {
		return nil, p.fail(candidateID, err)
	}
	defer cleanup()

	log.Printf("📄 Extracting text from: %s", filePath)
	text, err := p.extractor.ExtractText(filePath)
	if err != nil {
		return nil, p.fail(candidateID, err)
	}

	log.Println("🤖 Extracting resume fields with LLM...")
	parsed, err := p.strategy.Extract(ctx, text)
	if err != nil {
		return nil, p.fail(candidateID, err)
	}

	log.Println("💾 Saving parsed resume...")
	saved, err := p.writer.Commit(candidateID, parsed)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Successfully parsed resume for candidate %d", candidateID)
	return saved, nil
}

func (p *resumeParserService) fail(candidateID uint, err error) error {
	log.Printf("❌ Error parsing resume for candidate %d: %v", candidateID, err)
	if updateErr := p.candidateRepo.UpdateError(candidateID, err.Error()); updateErr != nil {
		log.Printf("❌ Failed to record parsing error for candidate %d: %v", candidateID, updateErr)
	}
	return err
}
