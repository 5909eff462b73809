package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const recoveryPreviewLen = 200

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// RecoverJSON pulls a single JSON object out of an LLM reply. It tries the
// whole reply, then the first fenced block, then the span from the first
// "{" to the last "}".
func RecoverJSON(raw string) (map[string]any, error) {
	if obj, ok := parseObject(raw); ok {
		return obj, nil
	}

	if match := fencedJSONPattern.FindStringSubmatch(raw); match != nil {
		if obj, ok := parseObject(match[1]); ok {
			return obj, nil
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		if obj, ok := parseObject(raw[start : end+1]); ok {
			return obj, nil
		}
	}

	return nil, fmt.Errorf("%w: %s...", ErrJSONRecovery, truncateRunes(raw, recoveryPreviewLen))
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
