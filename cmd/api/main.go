package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-parser/internal/config"
	"resume-parser/internal/handlers"
	"resume-parser/internal/repositories"
	"resume-parser/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	ctx := context.Background()

	// Initialize storage
	storageService, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize storage: %v", err)
	}
	if err := storageService.Init(ctx); err != nil {
		log.Fatalf("❌ Failed to prepare storage: %v", err)
	}
	log.Printf("✅ Storage initialized (%s)", cfg.Storage.Backend)

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized successfully (%s)", cfg.Gemini.Model)

	prompts := services.NewPromptBuilder(cfg.Parser.MaxPromptChars)
	validator := services.NewSchemaValidator()

	strategy, err := services.NewExtractionStrategy(cfg.Parser.Strategy, geminiService, prompts, validator)
	if err != nil {
		log.Fatalf("❌ Failed to initialize parser: %v", err)
	}

	parser := services.NewResumeParserService(
		candidateRepo,
		storageService,
		services.NewTextExtractor(),
		strategy,
		services.NewPersistenceWriter(candidateRepo),
	)
	documentRequest := services.NewDocumentRequestService(candidateRepo, geminiService, prompts, validator)
	log.Printf("✅ Resume parser initialized (%s strategy)", strategy.Name())

	// Initialize Handlers
	h := handlers.Handlers{
		Upload:    handlers.NewUploadHandler(candidateRepo, storageService, parser, cfg.Storage.MaxFileSize),
		Candidate: handlers.NewCandidateHandler(candidateRepo, storageService),
		Document:  handlers.NewDocumentHandler(candidateRepo, storageService, documentRequest, cfg.Storage.MaxFileSize),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	// Parsing runs inside the upload request, and submit-documents carries
	// up to two files.
	app := fiber.New(fiber.Config{
		AppName:      "Resume Parser API",
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize)*2 + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if cfg.Storage.Backend == config.StorageLocal {
		app.Static(cfg.Storage.MediaURL, cfg.Storage.UploadPath)
	}

	handlers.SetupRoutes(app, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (services.StorageService, error) {
	switch cfg.Storage.Backend {
	case config.StorageLocal:
		return services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MediaURL), nil
	case config.StorageS3:
		s3 := cfg.Storage.S3
		return services.NewS3StorageService(ctx, services.S3Options{
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			PublicURL: s3.PublicURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
