package compositor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/sync/errgroup"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
)

const (
	shadowOffset = 2.0
	saleRed      = "#ef4444"
)

var (
	textColor   = gg.White
	shadowColor = gg.RGBA2(0, 0, 0, 0.8)
	buttonShade = gg.RGBA2(0, 0, 0, 0.25)
)

// Options configures a Renderer.
type Options struct {
	Fonts       *FontRegistry
	Images      *ImageCache
	Concurrency int
	Logger      *infra.Logger
}

// Renderer flattens cards into opaque rasters sized to their aspect ratio.
type Renderer struct {
	fonts       *FontRegistry
	images      *ImageCache
	concurrency int
	logger      infra.Logger
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		fonts:       opts.Fonts,
		images:      opts.Images,
		concurrency: opts.Concurrency,
		logger:      infra.LoggerOrNop(opts.Logger),
	}
	if r.fonts == nil {
		r.fonts = NewFontRegistry("", opts.Logger)
	}
	if r.images == nil {
		r.images = NewImageCache(0)
	}
	if r.concurrency <= 0 {
		r.concurrency = 2
	}
	return r
}

// Layout computes the default geometry of a card on its canvas.
func (r *Renderer) Layout(card *Card) (Layout, error) {
	w, h := card.Background().AspectRatio.Dimensions()
	in := LayoutInput{
		Width:      w,
		Height:     h,
		Elements:   card.elementMap(),
		CTA:        card.CTAStyle(),
		ImageSizes: map[domain.ElementKind]image.Point{},
	}
	for _, kind := range []domain.ElementKind{domain.ProductImage, domain.Logo} {
		el := in.Elements[kind]
		if !el.HasContent() {
			continue
		}
		size, err := r.images.Size(el.Image)
		if err != nil {
			return Layout{}, fmt.Errorf("compositor: %s: %w", kind, err)
		}
		in.ImageSizes[kind] = size
	}
	return ComputeLayout(in, r.fonts), nil
}

// Flatten renders one card with every element at its current offset and
// scale.
func (r *Renderer) Flatten(ctx context.Context, card *Card) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bg := card.Background()
	if bg.Image.IsZero() {
		return nil, fmt.Errorf("compositor: card %d: %w: missing background", card.Index(), domain.ErrAssetUnreadable)
	}
	layout, err := r.Layout(card)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(layout.Width, layout.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.Black)

	bgImg, err := r.images.Decode(bg.Image)
	if err != nil {
		return nil, fmt.Errorf("compositor: background: %w", err)
	}
	dc.DrawImage(gg.ImageBufFromImage(imaging.Fill(bgImg, layout.Width, layout.Height, imaging.Center, imaging.Lanczos)), 0, 0)

	elements := card.elementMap()
	for _, kind := range domain.ElementKinds {
		p, ok := layout.Placement(kind)
		if !ok {
			continue
		}
		el := elements[kind]
		if kind.IsText() {
			err = r.drawText(dc, p, el, card.CTAStyle())
		} else {
			err = r.drawImage(dc, p, el)
		}
		if err != nil {
			return nil, fmt.Errorf("compositor: draw %s: %w", kind, err)
		}
	}

	r.logger.Debug().
		Int("card", card.Index()).
		Str("aspect_ratio", bg.AspectRatio.String()).
		Int("width", layout.Width).
		Int("height", layout.Height).
		Msg("compositor: flattened card")

	return dc.Image(), nil
}

// FlattenAll renders every card of an ad in card order.
func (r *Renderer) FlattenAll(ctx context.Context, cards []*Card) ([]image.Image, error) {
	out := make([]image.Image, len(cards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, card := range cards {
		g.Go(func() error {
			img, err := r.Flatten(gctx, card)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Renderer) drawImage(dc *gg.Context, p Placement, el domain.Element) error {
	src, err := r.images.Decode(el.Image)
	if err != nil {
		return err
	}
	box := p.Box.Transformed(el.Offset, el.EffectiveScale())
	w, h := int(math.Round(box.W)), int(math.Round(box.H))
	if w < 1 || h < 1 {
		return nil
	}
	dc.DrawImage(gg.ImageBufFromImage(imaging.Resize(src, w, h, imaging.Lanczos)), box.X, box.Y)
	return nil
}

func (r *Renderer) drawText(dc *gg.Context, p Placement, el domain.Element, cta domain.CTAStyle) error {
	face, err := r.fonts.Face(el.Typography.FontFamily, WeightFor(el.Kind), el.Typography.FontSize)
	if err != nil {
		return err
	}

	cx, cy := p.Box.Center()
	dc.Push()
	defer dc.Pop()
	dc.Translate(cx+el.Offset.X, cy+el.Offset.Y)
	scale := el.EffectiveScale()
	dc.Scale(scale, scale)
	dc.Translate(-cx, -cy)
	dc.SetFont(face)

	switch el.Kind {
	case domain.SalePrice:
		dc.SetColor(gg.White)
		dc.DrawRoundedRectangle(p.Box.X, p.Box.Y, p.Box.W, p.Box.H, BadgeRadius)
		if err := dc.Fill(); err != nil {
			return err
		}
		drawLines(dc, face, p, parseColor(saleRed, gg.Black), nil)
	case domain.Cta:
		dc.SetColor(buttonShade)
		dc.DrawRoundedRectangle(p.Box.X, p.Box.Y+shadowOffset*2, p.Box.W, p.Box.H, cta.CornerRadius)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetColor(parseColor(cta.BackgroundColor, gg.Black))
		dc.DrawRoundedRectangle(p.Box.X, p.Box.Y, p.Box.W, p.Box.H, cta.CornerRadius)
		if err := dc.Fill(); err != nil {
			return err
		}
		drawLines(dc, face, p, parseColor(cta.TextColor, gg.White), nil)
	default:
		shadow := shadowColor
		drawLines(dc, face, p, textColor, &shadow)
	}
	return nil
}

func drawLines(dc *gg.Context, face text.Face, p Placement, col gg.RGBA, shadow *gg.RGBA) {
	m := face.Metrics()
	for i, line := range p.Text.Lines {
		x := p.Content.X + (p.Content.W-p.Text.Widths[i])/2
		baseline := p.Content.Y + float64(i)*p.Text.LineHeight + m.LineGap/2 + m.Ascent
		if shadow != nil {
			dc.SetColor(*shadow)
			dc.DrawString(line, x+shadowOffset, baseline+shadowOffset)
		}
		dc.SetColor(col)
		dc.DrawString(line, x, baseline)
	}
}

// parseColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA. Anything else
// yields fallback.
func parseColor(s string, fallback gg.RGBA) gg.RGBA {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return fallback
	}
	for _, c := range hex {
		if !unicode.Is(unicode.ASCII_Hex_Digit, c) {
			return fallback
		}
	}
	return gg.Hex(hex)
}

// ErrNoCards is returned when an ad has no background to render.
var ErrNoCards = errors.New("compositor: ad has no backgrounds")
