package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
)

// PersistenceWriter stores a validated extraction against its candidate.
type PersistenceWriter interface {
	Commit(candidateID uint, parsed *ParsedResume) (*models.Candidate, error)
}

type persistenceWriter struct {
	candidateRepo repositories.CandidateRepository
}

func NewPersistenceWriter(candidateRepo repositories.CandidateRepository) PersistenceWriter {
	return &persistenceWriter{candidateRepo: candidateRepo}
}

// Commit writes the profile fields and then one batch per child list. The
// writes are not transactional: if one fails, earlier batches stay, and the
// candidate is marked failed with a "Database error" message.
func (w *persistenceWriter) Commit(candidateID uint, parsed *ParsedResume) (*models.Candidate, error) {
	if err := w.write(candidateID, parsed); err != nil {
		log.Printf("❌ Error saving to database: %v", err)
		if updateErr := w.candidateRepo.UpdateError(candidateID, fmt.Sprintf("Database error: %v", err)); updateErr != nil {
			log.Printf("❌ Failed to record database error for candidate %d: %v", candidateID, updateErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	candidate, err := w.candidateRepo.FindDetailByID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	log.Printf("✅ Successfully saved parsed data for candidate %d", candidateID)
	return candidate, nil
}

func (w *persistenceWriter) write(id uint, parsed *ParsedResume) error {
	personal := parsed.PersonalInfo
	if err := w.candidateRepo.UpdateProfile(id, &repositories.ProfileUpdateData{
		Name:            personal.Name,
		Email:           personal.Email,
		Phone:           personal.Phone,
		Location:        personal.Location,
		LinkedInURL:     personal.LinkedInURL,
		GitHubURL:       personal.GitHubURL,
		Summary:         personal.Summary,
		ConfidenceScore: AggregateConfidence(parsed),
		ParsedAt:        time.Now(),
	}); err != nil {
		return err
	}

	education := make([]models.Education, 0, len(parsed.Education))
	for _, e := range parsed.Education {
		education = append(education, models.Education{
			CandidateID: id,
			Degree:      e.Degree,
			Institution: e.Institution,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			GPA:         e.GPA,
			Description: e.Description,
		})
	}
	if err := w.candidateRepo.CreateEducation(education); err != nil {
		return err
	}

	experience := make([]models.Experience, 0, len(parsed.Experience))
	for _, e := range parsed.Experience {
		experience = append(experience, models.Experience{
			CandidateID: id,
			Company:     e.Company,
			Position:    e.Position,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
			SkillsUsed:  stringList(e.SkillsUsed),
		})
	}
	if err := w.candidateRepo.CreateExperience(experience); err != nil {
		return err
	}

	skills := make([]models.Skill, 0, len(parsed.Skills))
	for _, s := range parsed.Skills {
		skills = append(skills, models.Skill{
			CandidateID: id,
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Category:    s.Category,
		})
	}
	if err := w.candidateRepo.CreateSkills(skills); err != nil {
		return err
	}

	projects := make([]models.Project, 0, len(parsed.Projects))
	for _, p := range parsed.Projects {
		projects = append(projects, models.Project{
			CandidateID:  id,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: stringList(p.Technologies),
			URL:          p.URL,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		})
	}
	if err := w.candidateRepo.CreateProjects(projects); err != nil {
		return err
	}

	certifications := make([]models.Certification, 0, len(parsed.Certifications))
	for _, c := range parsed.Certifications {
		certifications = append(certifications, models.Certification{
			CandidateID:   id,
			Name:          c.Name,
			Issuer:        c.Issuer,
			IssueDate:     c.IssueDate,
			ExpiryDate:    c.ExpiryDate,
			CredentialID:  c.CredentialID,
			CredentialURL: c.CredentialURL,
		})
	}
	if err := w.candidateRepo.CreateCertifications(certifications); err != nil {
		return err
	}

	return w.candidateRepo.MarkCompleted(id)
}

func stringList(values []string) datatypes.JSONSlice[string] {
	if values == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](values)
}
