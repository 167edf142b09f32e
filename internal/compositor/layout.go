package compositor

import (
	"image"

	"adstudio/internal/domain"
)

// Layout constants in canvas pixels.
const (
	StackPadding    = 32.0
	StackGap        = 8.0
	PriceRowGap     = 16.0
	ProductWidth    = 150.0
	LogoWidth       = 100.0
	BadgePadX       = 12.0
	BadgePadY       = 4.0
	BadgeRadius     = 6.0
	CtaHorizontalK  = 2.5
	defaultLineRate = 1.2
)

// Box is an axis-aligned rectangle in canvas pixels.
type Box struct {
	X, Y, W, H float64
}

// Center returns the midpoint of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Transformed applies an element's offset and its scale about the box center.
func (b Box) Transformed(o domain.Offset, scale float64) Box {
	cx, cy := b.Center()
	w, h := b.W*scale, b.H*scale
	return Box{X: cx + o.X - w/2, Y: cy + o.Y - h/2, W: w, H: h}
}

// TextBlock is a wrapped run of text.
type TextBlock struct {
	Lines      []string
	Widths     []float64
	LineHeight float64
}

// Width returns the widest line.
func (t TextBlock) Width() float64 {
	var w float64
	for _, lw := range t.Widths {
		if lw > w {
			w = lw
		}
	}
	return w
}

// Height returns the stacked height of every line.
func (t TextBlock) Height() float64 {
	return float64(len(t.Lines)) * t.LineHeight
}

// TextMeasurer wraps text to a maximum width for a given typography.
type TextMeasurer interface {
	Wrap(s string, typo domain.Typography, weight Weight, maxWidth float64) TextBlock
}

// Placement is the default, untransformed geometry of one element.
type Placement struct {
	Kind    domain.ElementKind
	Box     Box
	Content Box
	Text    TextBlock
}

// LayoutInput is everything needed to place the overlays on one canvas.
type LayoutInput struct {
	Width, Height int
	Elements      map[domain.ElementKind]domain.Element
	CTA           domain.CTAStyle
	ImageSizes    map[domain.ElementKind]image.Point
}

// Layout is the default geometry of every visible element.
type Layout struct {
	Width, Height int
	Placements    map[domain.ElementKind]Placement
}

// Placement returns the geometry of a kind; ok is false for hidden elements.
func (l Layout) Placement(kind domain.ElementKind) (Placement, bool) {
	p, ok := l.Placements[kind]
	return p, ok
}

// ComputeLayout places image layers at the top-left corner and the text stack
// as a centered column. Elements without content take no space.
func ComputeLayout(in LayoutInput, m TextMeasurer) Layout {
	out := Layout{Width: in.Width, Height: in.Height, Placements: map[domain.ElementKind]Placement{}}

	for _, kind := range []domain.ElementKind{domain.ProductImage, domain.Logo} {
		el, ok := in.Elements[kind]
		if !ok || !el.HasContent() {
			continue
		}
		width := ProductWidth
		if kind == domain.Logo {
			width = LogoWidth
		}
		height := width
		if size, ok := in.ImageSizes[kind]; ok && size.X > 0 && size.Y > 0 {
			height = width * float64(size.Y) / float64(size.X)
		}
		box := Box{W: width, H: height}
		out.Placements[kind] = Placement{Kind: kind, Box: box, Content: box}
	}

	maxWidth := float64(in.Width) - 2*StackPadding
	if maxWidth < 1 {
		maxWidth = 1
	}

	var rows [][]Placement
	add := func(kind domain.ElementKind) (Placement, bool) {
		el, ok := in.Elements[kind]
		if !ok || !el.HasContent() {
			return Placement{}, false
		}
		return measureElement(kind, el, in.CTA, maxWidth, m), true
	}

	for _, kind := range []domain.ElementKind{domain.Header1, domain.Header2, domain.Description} {
		if p, ok := add(kind); ok {
			rows = append(rows, []Placement{p})
		}
	}
	var priceRow []Placement
	for _, kind := range []domain.ElementKind{domain.Price, domain.SalePrice} {
		if p, ok := add(kind); ok {
			priceRow = append(priceRow, p)
		}
	}
	if len(priceRow) > 0 {
		rows = append(rows, priceRow)
	}
	if p, ok := add(domain.Cta); ok {
		rows = append(rows, []Placement{p})
	}

	total := 0.0
	for i, row := range rows {
		_, h := rowSize(row)
		total += h
		if i > 0 {
			total += StackGap
		}
	}

	y := (float64(in.Height) - total) / 2
	for _, row := range rows {
		rw, rh := rowSize(row)
		x := (float64(in.Width) - rw) / 2
		for _, p := range row {
			p.Box.X = x
			p.Box.Y = y + (rh-p.Box.H)/2
			p.Content.X += p.Box.X
			p.Content.Y += p.Box.Y
			out.Placements[p.Kind] = p
			x += p.Box.W + PriceRowGap
		}
		y += rh + StackGap
	}
	return out
}

func rowSize(row []Placement) (float64, float64) {
	var w, h float64
	for i, p := range row {
		w += p.Box.W
		if i > 0 {
			w += PriceRowGap
		}
		if p.Box.H > h {
			h = p.Box.H
		}
	}
	return w, h
}

// measureElement returns a placement at the origin. Content is relative to
// the box until the stack positions it.
func measureElement(kind domain.ElementKind, el domain.Element, cta domain.CTAStyle, maxWidth float64, m TextMeasurer) Placement {
	var padX, padY float64
	switch kind {
	case domain.SalePrice:
		padX, padY = BadgePadX, BadgePadY
	case domain.Cta:
		padX, padY = cta.Padding*CtaHorizontalK, cta.Padding
	}
	inner := maxWidth - 2*padX
	if inner < 1 {
		inner = 1
	}
	block := m.Wrap(el.Text, el.Typography, WeightFor(kind), inner)
	content := Box{X: padX, Y: padY, W: block.Width(), H: block.Height()}
	return Placement{
		Kind:    kind,
		Box:     Box{W: content.W + 2*padX, H: content.H + 2*padY},
		Content: content,
		Text:    block,
	}
}

// Weight is the font weight a text element renders with.
type Weight int

const (
	WeightRegular Weight = iota
	WeightMedium
	WeightBold
)

// WeightFor returns the fixed weight of a text kind.
func WeightFor(kind domain.ElementKind) Weight {
	switch kind {
	case domain.Header1, domain.Header2, domain.Price, domain.SalePrice:
		return WeightBold
	case domain.Cta:
		return WeightMedium
	default:
		return WeightRegular
	}
}
