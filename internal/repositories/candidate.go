package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resume-parser/internal/models"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uint) (*models.Candidate, error)
	FindDetailByID(id uint) (*models.Candidate, error)
	List() ([]models.Candidate, error)
	UpdateStatus(id uint, status models.ParsingStatus) error
	UpdateError(id uint, errorMsg string) error
	UpdateProfile(id uint, profile *ProfileUpdateData) error
	MarkCompleted(id uint) error
	CreateEducation(records []models.Education) error
	CreateExperience(records []models.Experience) error
	CreateSkills(records []models.Skill) error
	CreateProjects(records []models.Project) error
	CreateCertifications(records []models.Certification) error
	UpdateDocuments(id uint, aadhar, pan *string) error
	SaveDocumentRequest(id uint, email string) error
	Delete(id uint) error
}

// ProfileUpdateData holds the scalar fields written from personal info.
type ProfileUpdateData struct {
	Name            string
	Email           string
	Phone           string
	Location        string
	LinkedInURL     string
	GitHubURL       string
	Summary         string
	ConfidenceScore float64
	ParsedAt        time.Time
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// FindDetailByID loads the candidate with every child list in display order.
func (r *candidateRepository) FindDetailByID(id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.
		Preload("Education", orderBy("start_date DESC, id ASC")).
		Preload("Experience", orderBy("start_date DESC, id ASC")).
		Preload("Skills", orderBy("name ASC, id ASC")).
		Preload("Projects", orderBy("start_date DESC, id ASC")).
		Preload("Certifications", orderBy("issue_date DESC, id ASC")).
		Where("id = ?", id).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// List returns all candidates newest first, with experience preloaded so the
// most recent company can be shown.
func (r *candidateRepository) List() ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Preload("Experience", orderBy("start_date DESC, id ASC")).
		Order("created_at DESC, id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) UpdateStatus(id uint, status models.ParsingStatus) error {
	return r.updates(id, map[string]interface{}{
		"parsing_status": status,
		"updated_at":     time.Now(),
	}, "failed to update status")
}

func (r *candidateRepository) UpdateError(id uint, errorMsg string) error {
	return r.updates(id, map[string]interface{}{
		"parsing_status": models.StatusFailed,
		"parsing_error":  errorMsg,
		"updated_at":     time.Now(),
	}, "failed to update error")
}

func (r *candidateRepository) UpdateProfile(id uint, data *ProfileUpdateData) error {
	return r.updates(id, map[string]interface{}{
		"name":             data.Name,
		"email":            data.Email,
		"phone":            data.Phone,
		"location":         data.Location,
		"linkedin_url":     data.LinkedInURL,
		"github_url":       data.GitHubURL,
		"summary":          data.Summary,
		"confidence_score": data.ConfidenceScore,
		"parsed_at":        data.ParsedAt,
		"updated_at":       time.Now(),
	}, "failed to update profile")
}

// MarkCompleted sets the terminal success state and clears any earlier error.
func (r *candidateRepository) MarkCompleted(id uint) error {
	return r.updates(id, map[string]interface{}{
		"parsing_status": models.StatusCompleted,
		"parsing_error":  nil,
		"updated_at":     time.Now(),
	}, "failed to mark completed")
}

func (r *candidateRepository) CreateEducation(records []models.Education) error {
	return r.createBatch(&records, len(records), "education")
}

func (r *candidateRepository) CreateExperience(records []models.Experience) error {
	return r.createBatch(&records, len(records), "experience")
}

func (r *candidateRepository) CreateSkills(records []models.Skill) error {
	return r.createBatch(&records, len(records), "skills")
}

func (r *candidateRepository) CreateProjects(records []models.Project) error {
	return r.createBatch(&records, len(records), "projects")
}

func (r *candidateRepository) CreateCertifications(records []models.Certification) error {
	return r.createBatch(&records, len(records), "certifications")
}

func (r *candidateRepository) UpdateDocuments(id uint, aadhar, pan *string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if aadhar != nil {
		updates["aadhar_document"] = *aadhar
	}
	if pan != nil {
		updates["pan_document"] = *pan
	}
	return r.updates(id, updates, "failed to update documents")
}

func (r *candidateRepository) SaveDocumentRequest(id uint, email string) error {
	now := time.Now()
	return r.updates(id, map[string]interface{}{
		"document_request_email": email,
		"document_requested_at":  now,
		"updated_at":             now,
	}, "failed to save document request")
}

// Delete removes the candidate together with its child lists.
func (r *candidateRepository) Delete(id uint) error {
	result := r.db.Select(clause.Associations).Delete(&models.Candidate{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete candidate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *candidateRepository) updates(id uint, values map[string]interface{}, action string) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(values)

	if result.Error != nil {
		return fmt.Errorf("%s: %w", action, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}

	return nil
}

func (r *candidateRepository) createBatch(records interface{}, n int, entity string) error {
	if n == 0 {
		return nil
	}
	if err := r.db.Create(records).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", entity, err)
	}
	return nil
}

func orderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}
