package prompt

import (
	"context"
	"errors"
	"fmt"

	sdk "google.golang.org/genai"

	"adstudio/internal/domain"
)

// JSONGenerator is the text half of the Gemini facade.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *sdk.Schema) (string, error)
}

// GeminiCopywriter asks Gemini for copy constrained by a response schema.
type GeminiCopywriter struct {
	model JSONGenerator
}

func NewGeminiCopywriter(model JSONGenerator) (*GeminiCopywriter, error) {
	if model == nil {
		return nil, errors.New("gemini copywriter: generator is required")
	}
	return &GeminiCopywriter{model: model}, nil
}

func (g *GeminiCopywriter) Name() string { return geminiProviderName }

func (g *GeminiCopywriter) WriteCopy(ctx context.Context, brief string) (domain.AdCopy, error) {
	text, err := g.model.GenerateJSON(ctx, buildCopyPrompt(brief), copySchema())
	if err != nil {
		return domain.AdCopy{}, fmt.Errorf("%w: copy: %v", domain.ErrGenerationFailed, err)
	}
	return decodeCopy(text)
}

func copySchema() *sdk.Schema {
	return &sdk.Schema{
		Type: sdk.TypeObject,
		Properties: map[string]*sdk.Schema{
			"header1":     {Type: sdk.TypeString, Description: "Main headline"},
			"header2":     {Type: sdk.TypeString, Description: "Secondary headline"},
			"description": {Type: sdk.TypeString, Description: "Ad description"},
			"cta":         {Type: sdk.TypeString, Description: "Call to Action text"},
		},
		Required: []string{"header1", "description", "cta"},
	}
}

var _ Copywriter = (*GeminiCopywriter)(nil)
