package models

import "time"

type UploadResponse struct {
	ID            uint      `json:"id"`
	ResumeFile    string    `json:"resume_file"`
	CreatedAt     time.Time `json:"created_at"`
	ParsingStatus string    `json:"parsing_status"`
	Message       string    `json:"message"`
	CandidateURL  string    `json:"candidate_url"`
	Error         *string   `json:"error,omitempty"`
}

type CandidateListItem struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Company       *string `json:"company"`
	ParsingStatus string  `json:"parsing_status"`
}

type StatusResponse struct {
	ID            uint       `json:"id"`
	ParsingStatus string     `json:"parsing_status"`
	ParsedAt      *time.Time `json:"parsed_at"`
	ParsingError  *string    `json:"parsing_error"`
}

type CandidateDetail struct {
	ID                   uint       `json:"id"`
	ResumeFile           string     `json:"resume_file"`
	CreatedAt            time.Time  `json:"created_at"`
	ParsedAt             *time.Time `json:"parsed_at"`
	ParsingStatus        string     `json:"parsing_status"`
	ParsingError         *string    `json:"parsing_error"`
	ConfidenceScore      *float64   `json:"confidence_score"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	Location             string     `json:"location"`
	LinkedInURL          string     `json:"linkedin_url"`
	GitHubURL            string     `json:"github_url"`
	Summary              string     `json:"summary"`
	AadharDocument       *string    `json:"aadhar_document"`
	PanDocument          *string    `json:"pan_document"`
	DocumentRequestEmail *string    `json:"document_request_email"`
	DocumentRequestedAt  *time.Time `json:"document_requested_at"`

	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}

type DocumentRequestEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type DocumentRequestResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Email   DocumentRequestEmail `json:"email"`
}
