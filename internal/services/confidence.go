package services

import "math"

// AggregateConfidence averages every per-record confidence score (0-100)
// and scales the mean to 0.0-1.0 with two decimals. No scores yields 0.
func AggregateConfidence(parsed *ParsedResume) float64 {
	if parsed == nil {
		return 0
	}
	return averageScores(collectScores(parsed))
}

func collectScores(parsed *ParsedResume) []int {
	var scores []int
	add := func(score *int) {
		if score != nil {
			scores = append(scores, *score)
		}
	}

	add(parsed.PersonalInfo.ConfidenceScore)
	for _, e := range parsed.Education {
		add(e.ConfidenceScore)
	}
	for _, e := range parsed.Experience {
		add(e.ConfidenceScore)
	}
	for _, e := range parsed.Skills {
		add(e.ConfidenceScore)
	}
	for _, e := range parsed.Projects {
		add(e.ConfidenceScore)
	}
	for _, e := range parsed.Certifications {
		add(e.ConfidenceScore)
	}
	return scores
}

func averageScores(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	mean := float64(total) / float64(len(scores))
	// Exact halves round away from zero.
	return math.Round(mean) / 100
}
