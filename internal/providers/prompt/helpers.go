package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"adstudio/internal/domain"
)

const (
	staticProviderName = "static"
	geminiProviderName = "gemini"
	openAIProviderName = "openai"
)

type modelCopyPayload struct {
	Header1     string `json:"header1"`
	Header2     string `json:"header2"`
	Description string `json:"description"`
	Cta         string `json:"cta"`
}

func buildCopyPrompt(brief string) string {
	sb := &strings.Builder{}
	sb.WriteString("You are an expert copywriter. Based on the following brief, generate compelling ad copy.\n")
	sb.WriteString("The response must be in JSON format.\n")
	sb.WriteString("- header1: A short, punchy headline (max 5 words).\n")
	sb.WriteString("- header2: An optional, slightly longer sub-headline (max 8 words).\n")
	sb.WriteString("- description: A concise and persuasive description (max 20 words).\n")
	sb.WriteString("- cta: A strong, clear call to action (max 3 words).\n\n")
	fmt.Fprintf(sb, "Brief: %q", strings.TrimSpace(brief))
	return sb.String()
}

// decodeCopy parses a model reply. A reply that does not parse or misses a
// required field is a failure, never a partial result.
func decodeCopy(raw string) (domain.AdCopy, error) {
	parsed, err := parseModelPayload[modelCopyPayload](raw)
	if err != nil {
		return domain.AdCopy{}, fmt.Errorf("%w: copy: %v", domain.ErrGenerationFailed, err)
	}
	out := domain.AdCopy{
		Header1:     strings.TrimSpace(parsed.Header1),
		Header2:     strings.TrimSpace(parsed.Header2),
		Description: strings.TrimSpace(parsed.Description),
		Cta:         strings.TrimSpace(parsed.Cta),
	}
	var missing []string
	if out.Header1 == "" {
		missing = append(missing, "header1")
	}
	if out.Description == "" {
		missing = append(missing, "description")
	}
	if out.Cta == "" {
		missing = append(missing, "cta")
	}
	if len(missing) > 0 {
		return domain.AdCopy{}, fmt.Errorf("%w: copy: missing %s", domain.ErrGenerationFailed, strings.Join(missing, ", "))
	}
	return out, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}

func parseModelPayload[T any](raw string) (T, error) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, errors.New("empty payload")
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
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
