package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var schemaErr *SchemaValidationError
	require.True(t, errors.As(err, &schemaErr), "expected SchemaValidationError, got %v", err)

	names := make([]string, 0, len(schemaErr.Fields))
	for _, f := range schemaErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidatePersonalInfo(t *testing.T) {
	v := NewSchemaValidator()

	info, err := v.ValidatePersonalInfo(map[string]any{
		"name":     "Grace Hopper",
		"email":    "grace@navy.mil",
		"phone":    nil,
		"location": "Arlington",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", info.Name)
	assert.Equal(t, "grace@navy.mil", info.Email)
	assert.Empty(t, info.Phone)
	assert.Nil(t, info.ConfidenceScore)
}

func TestValidatePersonalInfo_Failures(t *testing.T) {
	v := NewSchemaValidator()

	tests := []struct {
		name  string
		input map[string]any
		field string
	}{
		{name: "missing name", input: map[string]any{"email": "a@b.co"}, field: "personal_info.name"},
		{name: "null name", input: map[string]any{"name": nil}, field: "personal_info.name"},
		{name: "invalid email", input: map[string]any{"name": "A", "email": "not-an-email"}, field: "personal_info.email"},
		{name: "confidence too high", input: map[string]any{"name": "A", "confidence_score": 101}, field: "personal_info.confidence_score"},
		{name: "confidence negative", input: map[string]any{"name": "A", "confidence_score": -1}, field: "personal_info.confidence_score"},
		{name: "name has wrong type", input: map[string]any{"name": 42}, field: "personal_info.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidatePersonalInfo(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaValidation)
			assert.Contains(t, fieldNames(t, err), tt.field)
		})
	}
}

func TestValidateLists(t *testing.T) {
	v := NewSchemaValidator()

	education, err := v.ValidateEducation(map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, education)
	assert.Empty(t, education)

	skills, err := v.ValidateSkills(map[string]any{"skills": nil})
	require.NoError(t, err)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)

	experience, err := v.ValidateExperience(map[string]any{"experience": []any{
		map[string]any{"company": "Acme", "position": "Engineer", "skills_used": []any{"go", "sql"}},
	}})
	require.NoError(t, err)
	require.Len(t, experience, 1)
	assert.Equal(t, []string{"go", "sql"}, experience[0].SkillsUsed)

	projects, err := v.ValidateProjects(map[string]any{"projects": []any{
		map[string]any{"name": "Compiler", "description": "A-0", "technologies": nil},
	}})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Nil(t, projects[0].Technologies)

	certs, err := v.ValidateCertifications(map[string]any{"certifications": []any{
		map[string]any{"name": "CKA", "issuer": "CNCF", "confidence_score": 75},
	}})
	require.NoError(t, err)
	require.Len(t, certs, 1)
	require.NotNil(t, certs[0].ConfidenceScore)
	assert.Equal(t, 75, *certs[0].ConfidenceScore)
}

func TestValidateRecords_EmptyAndNull(t *testing.T) {
	v := NewSchemaValidator()

	_, err := v.ValidatePersonalInfo(map[string]any{"name": ""})
	assert.Equal(t, []string{"personal_info.name"}, fieldNames(t, err))

	_, err = v.ValidateSkills(map[string]any{"skills": []any{map[string]any{"name": ""}}})
	assert.Equal(t, []string{"skills[0].name"}, fieldNames(t, err))

	education, err := v.ValidateEducation(map[string]any{"education": nil})
	require.NoError(t, err)
	assert.Equal(t, []EducationEntry{}, education)
}

func TestValidateLists_Failures(t *testing.T) {
	v := NewSchemaValidator()

	_, err := v.ValidateEducation(map[string]any{"education": []any{
		map[string]any{"degree": "BSc", "institution": "U"},
		map[string]any{"degree": "MSc"},
	}})
	assert.Equal(t, []string{"education[1].institution"}, fieldNames(t, err))

	_, err = v.ValidateProjects(map[string]any{"projects": []any{
		map[string]any{"name": "No description"},
	}})
	assert.Equal(t, []string{"projects[0].description"}, fieldNames(t, err))

	_, err = v.ValidateSkills(map[string]any{"skills": "Go, SQL"})
	assert.Equal(t, []string{"skills"}, fieldNames(t, err))

	_, err = v.ValidateExperience(map[string]any{"experience": []any{"Acme"}})
	assert.Equal(t, []string{"experience[0]"}, fieldNames(t, err))

	_, err = v.ValidateCertifications(map[string]any{"certifications": []any{
		map[string]any{"name": "CKA", "issuer": "CNCF", "confidence_score": 150},
	}})
	assert.Equal(t, []string{"certifications[0].confidence_score"}, fieldNames(t, err))
}

func TestValidateResume(t *testing.T) {
	v := NewSchemaValidator()

	obj, err := RecoverJSON(combinedResponse)
	require.NoError(t, err)

	parsed, err := v.ValidateResume(obj)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", parsed.PersonalInfo.Name)
	assert.Len(t, parsed.Education, 2)
	assert.Len(t, parsed.Experience, 1)
	assert.Len(t, parsed.Skills, 2)
	assert.Len(t, parsed.Projects, 1)
	assert.Len(t, parsed.Certifications, 1)
	assert.NoError(t, RequireConfidence(parsed))
}

func TestValidateResume_Failures(t *testing.T) {
	v := NewSchemaValidator()

	_, err := v.ValidateResume(map[string]any{"education": []any{}})
	assert.Equal(t, []string{"personal_info"}, fieldNames(t, err))

	_, err = v.ValidateResume(map[string]any{
		"personal_info": map[string]any{"name": "A"},
		"skills":        []any{map[string]any{"proficiency": "high"}},
	})
	assert.Equal(t, []string{"skills[0].name"}, fieldNames(t, err))
}

func TestRequireConfidence(t *testing.T) {
	parsed := &ParsedResume{
		PersonalInfo: PersonalInfo{Name: "A", ConfidenceScore: intPtr(90)},
		Skills: []SkillEntry{
			{Name: "Go", ConfidenceScore: intPtr(80)},
			{Name: "SQL"},
		},
		Projects: []ProjectEntry{{Name: "X", Description: "Y"}},
	}

	err := RequireConfidence(parsed)
	assert.ErrorIs(t, err, ErrSchemaValidation)
	assert.Equal(t, []string{"skills[1].confidence_score", "projects[0].confidence_score"}, fieldNames(t, err))
}

func TestSchemaValidationError_Message(t *testing.T) {
	err := &SchemaValidationError{Fields: []FieldError{
		{Field: "personal_info.name", Message: "field required"},
		{Field: "skills[0].name", Message: "field required"},
	}}
	assert.Equal(t, "schema validation failed: personal_info.name: field required; skills[0].name: field required", err.Error())
}
