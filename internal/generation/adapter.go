package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
	"adstudio/internal/providers/genai"
	"adstudio/internal/providers/prompt"
)

// ImageGenerator is the image half of the Gemini facade.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req genai.ImageRequest) (genai.Image, error)
}

// Options configures an Adapter.
type Options struct {
	Images        ImageGenerator
	Copywriter    prompt.Copywriter
	RatePerMinute int
	Logger        *infra.Logger
}

// Adapter turns validated requests into backgrounds and briefs into copy.
type Adapter struct {
	images     ImageGenerator
	copywriter prompt.Copywriter
	limiter    *rate.Limiter
	logger     infra.Logger
}

func New(opts Options) (*Adapter, error) {
	if opts.Images == nil {
		return nil, errors.New("generation: image generator is required")
	}
	copywriter := opts.Copywriter
	if copywriter == nil {
		copywriter = prompt.NewStaticCopywriter()
	}
	a := &Adapter{
		images:     opts.Images,
		copywriter: copywriter,
		logger:     infra.LoggerOrNop(opts.Logger),
	}
	if opts.RatePerMinute > 0 {
		a.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), 1)
	}
	return a, nil
}

// GenerateAd produces one background per requested aspect ratio, in request
// order. The first failing ratio aborts the whole batch and no partial result
// is returned.
func (a *Adapter) GenerateAd(ctx context.Context, req domain.CompositionRequest, client *domain.Client) ([]domain.Background, error) {
	req = req.Clone()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.PrepareForGeneration()

	var out []domain.Background
	for _, size := range req.AdSizes {
		bg, err := a.generateOne(ctx, req, client, size)
		if err != nil {
			a.logger.Warn().Err(err).Str("aspect_ratio", size.String()).Msg("generation: batch aborted")
			return nil, err
		}
		out = append(out, bg)
	}
	if len(out) == 0 {
		return nil, domain.ErrNothingGenerated
	}
	return out, nil
}

// GenerateDraft generates backgrounds and wraps them in an unsaved ad whose
// elements sit at their default positions.
func (a *Adapter) GenerateDraft(ctx context.Context, req domain.CompositionRequest, client *domain.Client) (*domain.ComposableAd, error) {
	backgrounds, err := a.GenerateAd(ctx, req, client)
	if err != nil {
		return nil, err
	}
	req = req.Clone()
	req.PrepareForGeneration()
	if client != nil && req.LogoImage.IsZero() && !client.Logo.IsZero() {
		req.LogoImage = client.Logo
	}
	return domain.NewComposableAd(req, backgrounds), nil
}

// GenerateCopy asks the configured copywriter for copy from a brief.
func (a *Adapter) GenerateCopy(ctx context.Context, brief string) (domain.AdCopy, error) {
	if strings.TrimSpace(brief) == "" {
		return domain.AdCopy{}, &domain.ValidationError{Field: "brief", Message: "Please describe your product or campaign first."}
	}
	if err := a.wait(ctx); err != nil {
		return domain.AdCopy{}, err
	}
	out, err := a.copywriter.WriteCopy(ctx, brief)
	if err != nil {
		a.logger.Warn().Err(err).Str("provider", a.copywriter.Name()).Msg("generation: copy failed")
		return domain.AdCopy{}, err
	}
	return out, nil
}

func (a *Adapter) generateOne(ctx context.Context, req domain.CompositionRequest, client *domain.Client, size domain.AspectRatio) (domain.Background, error) {
	refs, roles, err := resolveReferences(req)
	if err != nil {
		return domain.Background{}, &domain.GenerationError{Reason: domain.ErrGenerationFailed, AspectRatio: size, Err: err}
	}
	brief := BuildBackgroundBrief(BriefInput{Request: req, Client: client, AspectRatio: size, Roles: roles})

	if err := a.wait(ctx); err != nil {
		return domain.Background{}, &domain.GenerationError{Reason: domain.ErrGenerationFailed, AspectRatio: size, Err: err}
	}
	width, height := size.Dimensions()
	start := time.Now()
	img, err := a.images.GenerateImage(ctx, genai.ImageRequest{
		Prompt:      brief,
		References:  refs,
		AspectRatio: size.ModelRatio(),
		Width:       width,
		Height:      height,
	})
	if err != nil {
		return domain.Background{}, classify(size, err)
	}
	if len(img.Data) == 0 {
		return domain.Background{}, &domain.GenerationError{Reason: domain.ErrGenerationEmpty, AspectRatio: size}
	}
	a.logger.Info().
		Str("aspect_ratio", size.String()).
		Int("references", len(refs)).
		Int("bytes", len(img.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("generation: background ready")
	return domain.Background{AspectRatio: size, Image: domain.InlineRef(img.MIMEType, img.Data)}, nil
}

func (a *Adapter) wait(ctx context.Context) error {
	if a.limiter == nil {
		return nil
	}
	return a.limiter.Wait(ctx)
}

// resolveReferences reads the reference images in submission order:
// background inspiration, then the template style image.
func resolveReferences(req domain.CompositionRequest) ([]genai.Reference, []string, error) {
	var refs []genai.Reference
	var roles []string
	add := func(ref *domain.ImageRef, role string) error {
		if ref.IsZero() {
			return nil
		}
		data, mimeType, err := ref.Bytes()
		if err != nil {
			return fmt.Errorf("%s: %w", role, err)
		}
		refs = append(refs, genai.Reference{Data: data, MIMEType: mimeType})
		roles = append(roles, role)
		return nil
	}
	if err := add(req.BackgroundImage, RoleBackgroundInspiration); err != nil {
		return nil, nil, err
	}
	role := RoleTemplateInspiration
	if req.RecreateTemplate {
		role = RoleTemplateRecreate
	}
	if err := add(req.TemplateStyleImage, role); err != nil {
		return nil, nil, err
	}
	return refs, roles, nil
}

func classify(size domain.AspectRatio, err error) error {
	var blocked *genai.BlockedError
	switch {
	case errors.As(err, &blocked):
		return &domain.GenerationError{Reason: domain.ErrGenerationBlocked, AspectRatio: size, Detail: blocked.Reason, Err: err}
	case errors.Is(err, domain.ErrGenerationBlocked):
		return &domain.GenerationError{Reason: domain.ErrGenerationBlocked, AspectRatio: size, Err: err}
	case errors.Is(err, domain.ErrGenerationEmpty):
		return &domain.GenerationError{Reason: domain.ErrGenerationEmpty, AspectRatio: size, Err: err}
	default:
		return &domain.GenerationError{Reason: domain.ErrGenerationFailed, AspectRatio: size, Err: err}
	}
}
