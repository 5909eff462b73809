package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload    *UploadHandler
	Candidate *CandidateHandler
	Document  *DocumentHandler
}

// SetupRoutes registers the API. Routing is not strict, so every path also
// answers without its trailing slash.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	candidates := app.Group("/candidates")
	candidates.Get("/", h.Candidate.HandleList)
	candidates.Post("/upload/", h.Upload.HandleUpload)
	candidates.Get("/:id/", h.Candidate.HandleGet)
	candidates.Delete("/:id/", h.Candidate.HandleDelete)
	candidates.Get("/:id/status/", h.Candidate.HandleStatus)
	candidates.Post("/:id/submit-documents/", h.Document.HandleSubmitDocuments)
	candidates.Post("/:id/request-documents/", h.Document.HandleRequestDocuments)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Parser API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /health/",
				"GET /candidates/",
				"POST /candidates/upload/",
				"GET /candidates/:id/",
				"DELETE /candidates/:id/",
				"GET /candidates/:id/status/",
				"POST /candidates/:id/submit-documents/",
				"POST /candidates/:id/request-documents/",
			},
		})
	})
}

// ErrorHandler formats errors that escape a handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
