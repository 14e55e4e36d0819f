package gemini

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/promptstudio/internal/domain"
)

// parseStructuredPrompt decodes a model response into a StructuredPrompt.
// JSON mode usually returns clean output, but models still occasionally wrap
// payloads in code fences or emit slightly broken JSON, so decoding falls
// back to fence stripping and then to jsonrepair.
func parseStructuredPrompt(raw string) (*domain.StructuredPrompt, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, errors.New("empty payload")
	}
	var prompt domain.StructuredPrompt
	if err := json.Unmarshal([]byte(cleaned), &prompt); err == nil {
		return &prompt, nil
	}
	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(repaired), &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
