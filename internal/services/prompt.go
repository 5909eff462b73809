package services

import (
	"fmt"
	"strings"
)

// Section is one extraction target of the multi-call strategy.
type Section string

const (
	SectionPersonalInfo   Section = KeyPersonalInfo
	SectionEducation      Section = KeyEducation
	SectionExperience     Section = KeyExperience
	SectionSkills         Section = KeySkills
	SectionProjects       Section = KeyProjects
	SectionCertifications Section = KeyCertifications
)

// ListSections are the array sections, in extraction order.
var ListSections = []Section{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
}

var sectionShapes = map[Section]string{
	SectionPersonalInfo: `{
  "name": "string (required)",
  "email": "string or null",
  "phone": "string or null",
  "location": "string or null",
  "linkedin_url": "string or null",
  "github_url": "string or null",
  "summary": "string or null"%s
}`,
	SectionEducation: `{
      "degree": "string (required)",
      "institution": "string (required)",
      "start_date": "string or null",
      "end_date": "string or null",
      "gpa": "string or null",
      "description": "string or null"%s
    }`,
	SectionExperience: `{
      "company": "string (required)",
      "position": "string (required)",
      "start_date": "string or null",
      "end_date": "string or null",
      "description": "string or null",
      "skills_used": ["array of strings or null"]%s
    }`,
	SectionSkills: `{
      "name": "string (required)",
      "proficiency": "string or null",
      "category": "string or null"%s
    }`,
	SectionProjects: `{
      "name": "string (required)",
      "description": "string (required)",
      "technologies": ["array of strings or null"],
      "url": "string or null",
      "start_date": "string or null",
      "end_date": "string or null"%s
    }`,
	SectionCertifications: `{
      "name": "string (required)",
      "issuer": "string (required)",
      "issue_date": "string or null",
      "expiry_date": "string or null",
      "credential_id": "string or null",
      "credential_url": "string or null"%s
    }`,
}

var sectionTargets = map[Section]string{
	SectionEducation:      "ALL education entries",
	SectionExperience:     "ALL work experience entries",
	SectionSkills:         "ALL skills",
	SectionProjects:       "ALL projects",
	SectionCertifications: "ALL certifications, licenses, and credentials",
}

const confidenceField = `,
      "confidence_score": "integer 0-100 (required)"`

type PromptBuilder struct {
	maxChars int
}

// NewPromptBuilder returns a builder that truncates resume text to maxChars
// runes in per-section prompts. Zero or less disables truncation.
func NewPromptBuilder(maxChars int) *PromptBuilder {
	return &PromptBuilder{maxChars: maxChars}
}

// BuildSectionPrompt creates the prompt for a single section.
func (pb *PromptBuilder) BuildSectionPrompt(section Section, resumeText string) string {
	text := truncateRunes(resumeText, pb.maxChars)

	if section == SectionPersonalInfo {
		return fmt.Sprintf(`You are a resume parser. Extract the candidate's personal information from the resume text below.

CRITICAL: Return your response as a VALID JSON object ONLY. Do not include any explanatory text, markdown formatting, or code blocks. Just the raw JSON.

JSON Schema:
%s

Resume text:
%s

Response (JSON only):`, shape(section, false), text)
	}

	return fmt.Sprintf(`You are a resume parser. Extract %s from the resume text below.

CRITICAL: Return ONLY a valid JSON object with a single key "%s" containing an array. No other text.

JSON Schema:
{
  "%s": [
    %s
  ]
}

Resume text:
%s

Response (JSON only):`, sectionTargets[section], section, section, shape(section, false), text)
}

// BuildCombinedPrompt creates one prompt covering every section, with a
// confidence score on each record. The resume text is not truncated.
func (pb *PromptBuilder) BuildCombinedPrompt(resumeText string) string {
	lists := make([]string, 0, len(ListSections))
	for _, section := range ListSections {
		lists = append(lists, fmt.Sprintf(`  "%s": [
    %s
  ]`, section, shape(section, true)))
	}

	personal := strings.ReplaceAll(shape(SectionPersonalInfo, true), "\n", "\n  ")

	return fmt.Sprintf(`You are a resume parser. Extract the candidate's personal information, education, work experience, skills, projects and certifications from the resume text below.

For every record, add "confidence_score": an integer from 0 to 100 stating how confident you are that the record was extracted correctly from the text.
Use null for optional fields that are not present. Use an empty array for sections with no entries.

CRITICAL: Return your response as a VALID JSON object ONLY. Do not include any explanatory text, markdown formatting, or code blocks. Just the raw JSON.

JSON Schema:
{
  "personal_info": %s,
%s
}

Resume text:
%s

Response (JSON only):`, personal, strings.Join(lists, ",\n"), resumeText)
}

// BuildDocumentRequestPrompt asks for an email requesting identity documents.
func (pb *PromptBuilder) BuildDocumentRequestPrompt(candidateName string) string {
	if strings.TrimSpace(candidateName) == "" {
		candidateName = "the candidate"
	}

	return fmt.Sprintf(`You are an HR assistant. Draft a short, polite, professional email to %s asking them to submit their identity documents (Aadhar card and PAN card) to complete their application. Ask them to upload clear scans as PDF or image files.

CRITICAL: Return your response as a VALID JSON object ONLY. Do not include any explanatory text, markdown formatting, or code blocks. Just the raw JSON.

JSON Schema:
{
  "subject": "string (required)",
  "body": "string (required)"
}

Response (JSON only):`, candidateName)
}

func shape(section Section, withConfidence bool) string {
	extra := ""
	if withConfidence {
		extra = confidenceField
		if section == SectionPersonalInfo {
			extra = strings.ReplaceAll(confidenceField, "      ", "  ")
		}
	}
	return fmt.Sprintf(sectionShapes[section], extra)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
