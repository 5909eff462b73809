package services

import (
	"context"
	"fmt"
	"log"
)

const (
	StrategySingleCall = "single_call"
	StrategyMultiCall  = "multi_call"
)

// ExtractionStrategy turns raw resume text into a validated ParsedResume.
type ExtractionStrategy interface {
	Name() string
	Extract(ctx context.Context, resumeText string) (*ParsedResume, error)
}

func NewExtractionStrategy(
	name string,
	gemini GeminiService,
	prompts *PromptBuilder,
	validator *SchemaValidator,
) (ExtractionStrategy, error) {
	switch name {
	case StrategySingleCall:
		return &singleCallStrategy{gemini: gemini, prompts: prompts, validator: validator}, nil
	case StrategyMultiCall:
		return &multiCallStrategy{gemini: gemini, prompts: prompts, validator: validator}, nil
	default:
		return nil, fmt.Errorf("unknown parser strategy: %s", name)
	}
}

// singleCallStrategy sends one combined prompt. Every record must carry a
// confidence score and any failure fails the whole extraction.
type singleCallStrategy struct {
	gemini    GeminiService
	prompts   *PromptBuilder
	validator *SchemaValidator
}

func (s *singleCallStrategy) Name() string {
	return StrategySingleCall
}

func (s *singleCallStrategy) Extract(ctx context.Context, resumeText string) (*ParsedResume, error) {
	prompt := s.prompts.BuildCombinedPrompt(resumeText)
	log.Printf("📝 Combined extraction prompt length: %d characters", len(prompt))

	response, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	obj, err := RecoverJSON(response)
	if err != nil {
		return nil, err
	}

	parsed, err := s.validator.ValidateResume(obj)
	if err != nil {
		return nil, err
	}

	if err := RequireConfidence(parsed); err != nil {
		return nil, err
	}

	log.Printf("✅ Parsed resume for %s: %d education, %d experience, %d skills, %d projects, %d certifications",
		parsed.PersonalInfo.Name, len(parsed.Education), len(parsed.Experience),
		len(parsed.Skills), len(parsed.Projects), len(parsed.Certifications))

	return parsed, nil
}

// multiCallStrategy sends one prompt per section over truncated text.
// Personal info is mandatory; a failing list section is logged and left empty.
type multiCallStrategy struct {
	gemini    GeminiService
	prompts   *PromptBuilder
	validator *SchemaValidator
}

func (s *multiCallStrategy) Name() string {
	return StrategyMultiCall
}

func (s *multiCallStrategy) Extract(ctx context.Context, resumeText string) (*ParsedResume, error) {
	obj, err := s.section(ctx, SectionPersonalInfo, resumeText)
	if err != nil {
		log.Printf("❌ Error parsing personal info: %v", err)
		return nil, err
	}

	info, err := s.validator.ValidatePersonalInfo(obj)
	if err != nil {
		log.Printf("❌ Error parsing personal info: %v", err)
		return nil, err
	}
	log.Printf("✅ Parsed personal info: %s", info.Name)

	parsed := &ParsedResume{
		PersonalInfo:   *info,
		Education:      []EducationEntry{},
		Experience:     []ExperienceEntry{},
		Skills:         []SkillEntry{},
		Projects:       []ProjectEntry{},
		Certifications: []CertificationEntry{},
	}

	for _, section := range ListSections {
		if err := s.extractList(ctx, section, resumeText, parsed); err != nil {
			log.Printf("⚠️  Error parsing %s, continuing with empty list: %v", section, err)
			continue
		}
	}

	return parsed, nil
}

func (s *multiCallStrategy) extractList(ctx context.Context, section Section, resumeText string, parsed *ParsedResume) error {
	obj, err := s.section(ctx, section, resumeText)
	if err != nil {
		return err
	}

	var count int
	switch section {
	case SectionEducation:
		list, err := s.validator.ValidateEducation(obj)
		if err != nil {
			return err
		}
		parsed.Education, count = list, len(list)
	case SectionExperience:
		list, err := s.validator.ValidateExperience(obj)
		if err != nil {
			return err
		}
		parsed.Experience, count = list, len(list)
	case SectionSkills:
		list, err := s.validator.ValidateSkills(obj)
		if err != nil {
			return err
		}
		parsed.Skills, count = list, len(list)
	case SectionProjects:
		list, err := s.validator.ValidateProjects(obj)
		if err != nil {
			return err
		}
		parsed.Projects, count = list, len(list)
	case SectionCertifications:
		list, err := s.validator.ValidateCertifications(obj)
		if err != nil {
			return err
		}
		parsed.Certifications, count = list, len(list)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	log.Printf("✅ Parsed %d %s entries", count, section)
	return nil
}

func (s *multiCallStrategy) section(ctx context.Context, section Section, resumeText string) (map[string]any, error) {
	response, err := s.gemini.GenerateText(ctx, s.prompts.BuildSectionPrompt(section, resumeText))
	if err != nil {
		return nil, err
	}
	return RecoverJSON(response)
}
