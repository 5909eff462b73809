package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resume-parser/internal/models"
	"resume-parser/internal/repositories"
)

const combinedResponse = `{
  "personal_info": {
    "name": "Ada Lovelace",
    "email": "ada@example.com",
    "phone": null,
    "location": "London",
    "linkedin_url": null,
    "github_url": "https://github.com/ada",
    "summary": "Mathematician",
    "confidence_score": 90
  },
  "education": [
    {"degree": "BSc Mathematics", "institution": "University of London", "start_date": "1830", "end_date": "1833", "gpa": null, "description": null, "confidence_score": 80},
    {"degree": "Private tutoring", "institution": "De Morgan", "start_date": "1840", "end_date": "Present", "confidence_score": 70}
  ],
  "experience": [
    {"company": "Analytical Engine Co", "position": "Programmer", "start_date": "1842", "end_date": "1843", "description": "Wrote notes", "skills_used": ["algorithms", "math"], "confidence_score": 100}
  ],
  "skills": [
    {"name": "Mathematics", "proficiency": "Expert", "category": "Science", "confidence_score": 60},
    {"name": "Poetry", "proficiency": null, "category": null, "confidence_score": 50}
  ],
  "projects": [
    {"name": "Note G", "description": "First published algorithm", "technologies": null, "url": null, "confidence_score": 90}
  ],
  "certifications": [
    {"name": "Royal Society Fellow", "issuer": "Royal Society", "issue_date": "1843", "confidence_score": 100}
  ]
}`

// fakeGemini answers prompts with respond and records every prompt.
type fakeGemini struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(prompt)
}

func (f *fakeGemini) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func replyWith(text string) *fakeGemini {
	return &fakeGemini{respond: func(string) (string, error) { return text, nil }}
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(string) (string, error) {
	return f.text, f.err
}

// sectionOf reports which multi-call section a prompt asks for.
func sectionOf(prompt string) Section {
	for _, s := range ListSections {
		if strings.Contains(prompt, `single key "`+string(s)+`"`) {
			return s
		}
	}
	return SectionPersonalInfo
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Candidate{},
		&models.Education{},
		&models.Experience{},
		&models.Skill{},
		&models.Project{},
		&models.Certification{},
	))
	return db
}

func newCandidate(t *testing.T, repo repositories.CandidateRepository) *models.Candidate {
	t.Helper()
	c := &models.Candidate{ResumeFile: "resumes/test.pdf", ParsingStatus: models.StatusPending}
	require.NoError(t, repo.Create(c))
	return c
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// newFileHeader builds a multipart.FileHeader the way an HTTP upload would.
func newFileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File[field][0]
}
