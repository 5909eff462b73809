package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSectionPrompt_Truncates(t *testing.T) {
	pb := NewPromptBuilder(3000)
	text := strings.Repeat("a", 3000) + "TAIL"

	for _, section := range append([]Section{SectionPersonalInfo}, ListSections...) {
		prompt := pb.BuildSectionPrompt(section, text)
		assert.Contains(t, prompt, strings.Repeat("a", 3000), section)
		assert.NotContains(t, prompt, "TAIL", section)
	}
}

func TestBuildSectionPrompt_TruncatesRunes(t *testing.T) {
	pb := NewPromptBuilder(3)
	prompt := pb.BuildSectionPrompt(SectionSkills, "éàüö")
	assert.Contains(t, prompt, "éàü\n")
	assert.NotContains(t, prompt, "ö")
}

func TestBuildSectionPrompt_Shapes(t *testing.T) {
	pb := NewPromptBuilder(0)

	personal := pb.BuildSectionPrompt(SectionPersonalInfo, "resume")
	assert.Contains(t, personal, "Extract the candidate's personal information")
	assert.Contains(t, personal, `"linkedin_url"`)
	assert.NotContains(t, personal, "confidence_score")

	for _, section := range ListSections {
		prompt := pb.BuildSectionPrompt(section, "resume")
		assert.Contains(t, prompt, `single key "`+string(section)+`"`)
		assert.Equal(t, section, sectionOf(prompt))
		assert.True(t, strings.HasSuffix(prompt, "Response (JSON only):"))
	}

	assert.Contains(t, pb.BuildSectionPrompt(SectionExperience, "r"), `"skills_used"`)
	assert.Contains(t, pb.BuildSectionPrompt(SectionCertifications, "r"), `"credential_url"`)
}

func TestBuildCombinedPrompt(t *testing.T) {
	pb := NewPromptBuilder(10)
	text := strings.Repeat("b", 5000)

	prompt := pb.BuildCombinedPrompt(text)
	assert.Contains(t, prompt, text)
	assert.Contains(t, prompt, `"personal_info": {`)
	for _, section := range ListSections {
		assert.Contains(t, prompt, `"`+string(section)+`": [`)
	}
	assert.Equal(t, 1+len(ListSections)+1, strings.Count(prompt, "confidence_score"))
}

func TestBuildDocumentRequestPrompt(t *testing.T) {
	pb := NewPromptBuilder(3000)

	prompt := pb.BuildDocumentRequestPrompt("Ada Lovelace")
	assert.Contains(t, prompt, "Ada Lovelace")
	assert.Contains(t, prompt, "Aadhar")
	assert.Contains(t, prompt, "PAN")
	assert.Contains(t, prompt, `"subject"`)
	assert.Contains(t, prompt, `"body"`)

	assert.Contains(t, pb.BuildDocumentRequestPrompt("  "), "the candidate")
}
