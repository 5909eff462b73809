package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser/internal/repositories"
)

func TestRequestDocuments(t *testing.T) {
	repo := repositories.NewCandidateRepository(newTestDB(t))
	c := newCandidate(t, repo)
	require.NoError(t, repo.UpdateProfile(c.ID, &repositories.ProfileUpdateData{Name: "Ada Lovelace"}))

	gemini := replyWith("```json\n{\"subject\": \"Documents needed\", \"body\": \"Dear Ada,\\nPlease upload your Aadhar and PAN.\"}\n```")
	svc := NewDocumentRequestService(repo, gemini, NewPromptBuilder(3000), NewSchemaValidator())

	email, err := svc.RequestDocuments(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Documents needed", email.Subject)
	assert.Equal(t, "Dear Ada,\nPlease upload your Aadhar and PAN.", email.Body)
	assert.Contains(t, gemini.prompts[0], "Ada Lovelace")

	found, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	require.NotNil(t, found.DocumentRequestEmail)
	assert.Equal(t, "Subject: Documents needed\n\nDear Ada,\nPlease upload your Aadhar and PAN.", *found.DocumentRequestEmail)
	assert.NotNil(t, found.DocumentRequestedAt)
}

func TestRequestDocuments_Failures(t *testing.T) {
	tests := []struct {
		name   string
		gemini *fakeGemini
		target error
	}{
		{
			name:   "llm error",
			gemini: &fakeGemini{respond: func(string) (string, error) { return "", ErrLLM }},
			target: ErrLLM,
		},
		{name: "no json", gemini: replyWith("Sure! Here is an email."), target: ErrJSONRecovery},
		{name: "missing body", gemini: replyWith(`{"subject": "Docs"}`), target: ErrSchemaValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repositories.NewCandidateRepository(newTestDB(t))
			c := newCandidate(t, repo)

			svc := NewDocumentRequestService(repo, tt.gemini, NewPromptBuilder(3000), NewSchemaValidator())
			_, err := svc.RequestDocuments(context.Background(), c.ID)
			assert.ErrorIs(t, err, tt.target)

			found, err := repo.FindByID(c.ID)
			require.NoError(t, err)
			assert.Nil(t, found.DocumentRequestEmail)
		})
	}
}

func TestRequestDocuments_UnknownCandidate(t *testing.T) {
	repo := repositories.NewCandidateRepository(newTestDB(t))
	gemini := replyWith(`{"subject": "s", "body": "b"}`)
	svc := NewDocumentRequestService(repo, gemini, NewPromptBuilder(3000), NewSchemaValidator())

	_, err := svc.RequestDocuments(context.Background(), 42)
	assert.ErrorIs(t, err, repositories.ErrCandidateNotFound)
	assert.Zero(t, gemini.calls())
}
