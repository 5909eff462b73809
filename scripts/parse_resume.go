package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"resume-parser/internal/config"
	"resume-parser/internal/services"
)

type result struct {
	File            string                 `json:"file"`
	Strategy        string                 `json:"strategy"`
	ConfidenceScore float64                `json:"confidence_score"`
	Parsed          *services.ParsedResume `json:"parsed"`
}

func main() {
	cfg := config.Load()

	strategyName := flag.String("strategy", cfg.Parser.Strategy, "extraction strategy: single_call or multi_call")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: go run scripts/parse_resume.go [-strategy name] <resume.pdf|.docx|.doc>...")
	}

	log.Println("🚀 Starting offline resume parsing...")

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	strategy, err := services.NewExtractionStrategy(
		*strategyName,
		geminiService,
		services.NewPromptBuilder(cfg.Parser.MaxPromptChars),
		services.NewSchemaValidator(),
	)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	extractor := services.NewTextExtractor()
	ctx := context.Background()

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	successCount := 0
	failCount := 0

	for _, path := range flag.Args() {
		log.Printf("\n📄 Processing: %s", path)

		text, err := extractor.ExtractText(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d characters", len(text))

		parsed, err := strategy.Extract(ctx, text)
		if err != nil {
			log.Printf("   ❌ Failed to parse: %v", err)
			failCount++
			continue
		}

		if err := encoder.Encode(result{
			File:            path,
			Strategy:        strategy.Name(),
			ConfidenceScore: services.AggregateConfidence(parsed),
			Parsed:          parsed,
		}); err != nil {
			log.Printf("   ❌ Failed to write result: %v", err)
			failCount++
			continue
		}
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Parsing Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
