package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "google.golang.org/genai"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
)

// ErrOffline is returned by text calls when no API key is configured.
var ErrOffline = errors.New("genai: no api key configured")

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	ImageModel string
	TextModel  string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin facade over the Gemini SDK. Without an API key it runs
// offline and paints deterministic synthetic backdrops instead.
type Client struct {
	api        *sdk.Client
	imageModel string
	textModel  string
	logger     infra.Logger
}

// Reference is an image sent alongside the prompt.
type Reference struct {
	Data     []byte
	MIMEType string
}

// ImageRequest describes one background generation.
type ImageRequest struct {
	Prompt      string
	References  []Reference
	AspectRatio string
	Width       int
	Height      int
}

// Image is a generated image payload.
type Image struct {
	Data     []byte
	MIMEType string
}

// BlockedError reports a prompt rejected by the safety filter.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "genai: request blocked: " + e.Reason
}

func (e *BlockedError) Is(target error) bool {
	return target == domain.ErrGenerationBlocked
}

// NewClient constructs a Gemini client. An empty API key yields an offline
// client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	c := &Client{
		imageModel: opts.ImageModel,
		textModel:  opts.TextModel,
		logger:     infra.LoggerOrNop(opts.Logger),
	}
	if c.imageModel == "" {
		c.imageModel = "gemini-2.5-flash-image"
	}
	if c.textModel == "" {
		c.textModel = "gemini-2.5-flash"
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return c, nil
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	cfg := &sdk.ClientConfig{
		APIKey:     apiKey,
		Backend:    sdk.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimRight(opts.BaseURL, "/"); base != "" {
		cfg.HTTPOptions = sdk.HTTPOptions{BaseURL: base + "/"}
	}
	api, err := sdk.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai: new client: %w", err)
	}
	c.api = api
	return c, nil
}

// Offline reports whether the client paints synthetic images.
func (c *Client) Offline() bool {
	return c.api == nil
}

// ImageModel returns the configured image model identifier.
func (c *Client) ImageModel() string {
	return c.imageModel
}

// GenerateImage produces one image for req. A prompt blocked by the model
// yields a *BlockedError and a response without image data yields
// domain.ErrGenerationEmpty.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if c.Offline() {
		return c.syntheticImage(req)
	}

	parts := make([]*sdk.Part, 0, len(req.References)+1)
	for _, ref := range req.References {
		parts = append(parts, sdk.NewPartFromBytes(ref.Data, ref.MIMEType))
	}
	parts = append(parts, sdk.NewPartFromText(req.Prompt))

	cfg := &sdk.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &sdk.ImageConfig{AspectRatio: req.AspectRatio}
	}

	start := time.Now()
	resp, err := c.api.Models.GenerateContent(ctx, c.imageModel, []*sdk.Content{{Role: "user", Parts: parts}}, cfg)
	if err != nil {
		return Image{}, fmt.Errorf("genai: generate image: %w", err)
	}
	img, err := extractImage(resp)
	c.logger.Debug().
		Str("model", c.imageModel).
		Str("aspect_ratio", req.AspectRatio).
		Int("references", len(req.References)).
		Dur("elapsed", time.Since(start)).
		Err(err).
		Msg("genai: image generation finished")
	return img, err
}

// GenerateJSON asks the text model for a JSON document matching schema and
// returns the raw text.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *sdk.Schema) (string, error) {
	if c.Offline() {
		return "", ErrOffline
	}
	cfg := &sdk.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	resp, err := c.api.Models.GenerateContent(ctx, c.textModel, sdk.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("genai: generate text: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}
	return resp.Text(), nil
}

func extractImage(resp *sdk.GenerateContentResponse) (Image, error) {
	if resp == nil {
		return Image{}, domain.ErrGenerationEmpty
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return Image{}, &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
	}
	var finish sdk.FinishReason
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		if finish == "" {
			finish = cand.FinishReason
		}
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
			}
		}
	}
	switch finish {
	case sdk.FinishReasonSafety, sdk.FinishReasonProhibitedContent, sdk.FinishReasonImageSafety:
		return Image{}, &BlockedError{Reason: string(finish)}
	}
	return Image{}, domain.ErrGenerationEmpty
}
