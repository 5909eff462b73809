package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Keys of the recovered JSON document.
const (
	KeyPersonalInfo   = "personal_info"
	KeyEducation      = "education"
	KeyExperience     = "experience"
	KeySkills         = "skills"
	KeyProjects       = "projects"
	KeyCertifications = "certifications"
)

type PersonalInfo struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	LinkedInURL     string `json:"linkedin_url"`
	GitHubURL       string `json:"github_url"`
	Summary         string `json:"summary"`
	ConfidenceScore *int   `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=100"`
}

type EducationEntry struct {
	Degree          string `json:"degree" validate:"required"`
	Institution     string `json:"institution" validate:"required"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	GPA             string `json:"gpa"`
	Description     string `json:"description"`
	ConfidenceScore *int   `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=100"`
}

type ExperienceEntry struct {
	Company         string   `json:"company" validate:"required"`
	Position        string   `json:"position" validate:"required"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Description     string   `json:"description"`
	SkillsUsed      []string `json:"skills_used"`
	ConfidenceScore *int     `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=100"`
}

type SkillEntry struct {
	Name            string `json:"name" validate:"required"`
	Proficiency     string `json:"proficiency"`
	Category        string `json:"category"`
	ConfidenceScore *int   `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=100"`
}

type ProjectEntry struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Technologies    []string `json:"technologies"`
	URL             string   `json:"url"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	ConfidenceScore *int     `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=100"`
}

type CertificationEntry struct {
	Name            string `json:"name" validate:"required"`
	Issuer          string `json:"issuer" validate:"required"`
	IssueDate       string `json:"issue_date"`
	ExpiryDate      string `json:"expiry_date"`
	CredentialID    string `json:"credential_id"`
	CredentialURL   string `json:"credential_url"`
	ConfidenceScore *int   `json:"confidence_score,omitempty" validate:"omitempty,min=0,max=100"`
}

// ParsedResume is the validated extraction result for one resume.
type ParsedResume struct {
	PersonalInfo   PersonalInfo         `json:"personal_info"`
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Skills         []SkillEntry         `json:"skills"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
}

// SchemaValidator turns recovered JSON objects into typed records, or a
// *SchemaValidationError naming the offending fields.
type SchemaValidator struct {
	validate *validator.Validate
}

func NewSchemaValidator() *SchemaValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &SchemaValidator{validate: v}
}

// ValidatePersonalInfo treats obj itself as the personal info record.
func (s *SchemaValidator) ValidatePersonalInfo(obj map[string]any) (*PersonalInfo, error) {
	var info PersonalInfo
	if err := decodeRecord(obj, &info, KeyPersonalInfo); err != nil {
		return nil, err
	}
	if err := s.check(KeyPersonalInfo, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *SchemaValidator) ValidateEducation(obj map[string]any) ([]EducationEntry, error) {
	return validateList[EducationEntry](s, obj, KeyEducation)
}

func (s *SchemaValidator) ValidateExperience(obj map[string]any) ([]ExperienceEntry, error) {
	return validateList[ExperienceEntry](s, obj, KeyExperience)
}

func (s *SchemaValidator) ValidateSkills(obj map[string]any) ([]SkillEntry, error) {
	return validateList[SkillEntry](s, obj, KeySkills)
}

func (s *SchemaValidator) ValidateProjects(obj map[string]any) ([]ProjectEntry, error) {
	return validateList[ProjectEntry](s, obj, KeyProjects)
}

func (s *SchemaValidator) ValidateCertifications(obj map[string]any) ([]CertificationEntry, error) {
	return validateList[CertificationEntry](s, obj, KeyCertifications)
}

// ValidateResume validates a combined document holding personal_info and
// all five lists. The first failing section fails the whole document.
func (s *SchemaValidator) ValidateResume(obj map[string]any) (*ParsedResume, error) {
	personal, ok := obj[KeyPersonalInfo].(map[string]any)
	if !ok {
		return nil, &SchemaValidationError{Fields: []FieldError{{Field: KeyPersonalInfo, Message: "field required"}}}
	}

	info, err := s.ValidatePersonalInfo(personal)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedResume{PersonalInfo: *info}
	if parsed.Education, err = s.ValidateEducation(obj); err != nil {
		return nil, err
	}
	if parsed.Experience, err = s.ValidateExperience(obj); err != nil {
		return nil, err
	}
	if parsed.Skills, err = s.ValidateSkills(obj); err != nil {
		return nil, err
	}
	if parsed.Projects, err = s.ValidateProjects(obj); err != nil {
		return nil, err
	}
	if parsed.Certifications, err = s.ValidateCertifications(obj); err != nil {
		return nil, err
	}
	return parsed, nil
}

// RequireConfidence reports every record that lacks a confidence score.
func RequireConfidence(parsed *ParsedResume) error {
	var missing []FieldError
	add := func(path string, score *int) {
		if score == nil {
			missing = append(missing, FieldError{Field: path + ".confidence_score", Message: "field required"})
		}
	}

	add(KeyPersonalInfo, parsed.PersonalInfo.ConfidenceScore)
	for i, e := range parsed.Education {
		add(indexPath(KeyEducation, i), e.ConfidenceScore)
	}
	for i, e := range parsed.Experience {
		add(indexPath(KeyExperience, i), e.ConfidenceScore)
	}
	for i, e := range parsed.Skills {
		add(indexPath(KeySkills, i), e.ConfidenceScore)
	}
	for i, e := range parsed.Projects {
		add(indexPath(KeyProjects, i), e.ConfidenceScore)
	}
	for i, e := range parsed.Certifications {
		add(indexPath(KeyCertifications, i), e.ConfidenceScore)
	}

	if len(missing) > 0 {
		return &SchemaValidationError{Fields: missing}
	}
	return nil
}

func validateList[T any](s *SchemaValidator, obj map[string]any, key string) ([]T, error) {
	out := []T{}

	value, ok := obj[key]
	if !ok || value == nil {
		return out, nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil, &SchemaValidationError{Fields: []FieldError{{Field: key, Message: "value is not a valid list"}}}
	}

	for i, item := range items {
		path := indexPath(key, i)

		fields, ok := item.(map[string]any)
		if !ok {
			return nil, &SchemaValidationError{Fields: []FieldError{{Field: path, Message: "value is not a valid object"}}}
		}

		var record T
		if err := decodeRecord(fields, &record, path); err != nil {
			return nil, err
		}
		if err := s.check(path, &record); err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

func (s *SchemaValidator) check(path string, record any) error {
	err := s.validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   path + "." + fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return &SchemaValidationError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return "ensure this value is greater than or equal to " + fe.Param()
	case "max":
		return "ensure this value is less than or equal to " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}

// decodeRecord maps a generic object onto a typed record, reporting type
// mismatches against the offending field.
func decodeRecord(fields map[string]any, target any, path string) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &SchemaValidationError{Fields: []FieldError{{
				Field:   path + "." + typeErr.Field,
				Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}}}
		}
		return &SchemaValidationError{Fields: []FieldError{{Field: path, Message: err.Error()}}}
	}
	return nil
}

func indexPath(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}
