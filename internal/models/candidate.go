package models

import (
	"time"

	"gorm.io/datatypes"
)

type ParsingStatus string

const (
	StatusPending    ParsingStatus = "pending"
	StatusProcessing ParsingStatus = "processing"
	StatusCompleted  ParsingStatus = "completed"
	StatusFailed     ParsingStatus = "failed"
)

// Candidate is one uploaded resume and the profile derived from it.
// File fields hold storage names, not URLs.
type Candidate struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	ResumeFile      string        `gorm:"type:text;not null" json:"resume_file"`
	ParsingStatus   ParsingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"parsing_status"`
	ParsingError    *string       `gorm:"type:text" json:"parsing_error"`
	ConfidenceScore *float64      `gorm:"type:decimal(3,2)" json:"confidence_score"`

	Name        string `gorm:"size:255" json:"name"`
	Email       string `gorm:"size:254" json:"email"`
	Phone       string `gorm:"size:50" json:"phone"`
	Location    string `gorm:"size:255" json:"location"`
	LinkedInURL string `gorm:"column:linkedin_url;size:200" json:"linkedin_url"`
	GitHubURL   string `gorm:"column:github_url;size:200" json:"github_url"`
	Summary     string `gorm:"type:text" json:"summary"`

	AadharDocument       *string    `gorm:"type:text" json:"aadhar_document"`
	PanDocument          *string    `gorm:"type:text" json:"pan_document"`
	DocumentRequestEmail *string    `gorm:"type:text" json:"document_request_email"`
	DocumentRequestedAt  *time.Time `json:"document_requested_at"`

	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ParsedAt  *time.Time `json:"parsed_at"`

	Education      []Education     `gorm:"constraint:OnDelete:CASCADE" json:"education"`
	Experience     []Experience    `gorm:"constraint:OnDelete:CASCADE" json:"experience"`
	Skills         []Skill         `gorm:"constraint:OnDelete:CASCADE" json:"skills"`
	Projects       []Project       `gorm:"constraint:OnDelete:CASCADE" json:"projects"`
	Certifications []Certification `gorm:"constraint:OnDelete:CASCADE" json:"certifications"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Dates on the child records stay free text so "Present" and partial dates survive.

type Education struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CandidateID uint   `gorm:"not null;index" json:"-"`
	Degree      string `gorm:"size:255;not null" json:"degree"`
	Institution string `gorm:"size:255;not null" json:"institution"`
	StartDate   string `gorm:"size:50" json:"start_date"`
	EndDate     string `gorm:"size:50" json:"end_date"`
	GPA         string `gorm:"column:gpa;size:20" json:"gpa"`
	Description string `gorm:"type:text" json:"description"`
}

func (Education) TableName() string {
	return "education"
}

type Experience struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	CandidateID uint                        `gorm:"not null;index" json:"-"`
	Company     string                      `gorm:"size:255;not null" json:"company"`
	Position    string                      `gorm:"size:255;not null" json:"position"`
	StartDate   string                      `gorm:"size:50" json:"start_date"`
	EndDate     string                      `gorm:"size:50" json:"end_date"`
	Description string                      `gorm:"type:text" json:"description"`
	SkillsUsed  datatypes.JSONSlice[string] `json:"skills_used"`
}

func (Experience) TableName() string {
	return "experience"
}

type Skill struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CandidateID uint   `gorm:"not null;index" json:"-"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Proficiency string `gorm:"size:50" json:"proficiency"`
	Category    string `gorm:"size:100" json:"category"`
}

func (Skill) TableName() string {
	return "skills"
}

type Project struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	CandidateID  uint                        `gorm:"not null;index" json:"-"`
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	URL          string                      `gorm:"column:url;size:200" json:"url"`
	StartDate    string                      `gorm:"size:50" json:"start_date"`
	EndDate      string                      `gorm:"size:50" json:"end_date"`
}

func (Project) TableName() string {
	return "projects"
}

type Certification struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CandidateID   uint   `gorm:"not null;index" json:"-"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Issuer        string `gorm:"size:255;not null" json:"issuer"`
	IssueDate     string `gorm:"size:50" json:"issue_date"`
	ExpiryDate    string `gorm:"size:50" json:"expiry_date"`
	CredentialID  string `gorm:"size:255" json:"credential_id"`
	CredentialURL string `gorm:"column:credential_url;size:200" json:"credential_url"`
}

func (Certification) TableName() string {
	return "certifications"
}
