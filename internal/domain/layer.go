package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultScale = 1.0
	MinScale     = 0.1
	ScaleStep    = 0.05
)

// Offset is a pixel displacement from an element's default laid-out position.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ElementKind names one of the fixed overlay slots of a composable ad.
type ElementKind string

const (
	Header1      ElementKind = "header1"
	Header2      ElementKind = "header2"
	Description  ElementKind = "description"
	Price        ElementKind = "price"
	SalePrice    ElementKind = "salePrice"
	Cta          ElementKind = "cta"
	ProductImage ElementKind = "productImage"
	Logo         ElementKind = "logo"
)

// ElementKinds lists every kind in draw order: image layers first, then the
// text stack top to bottom.
var ElementKinds = []ElementKind{
	ProductImage, Logo, Header1, Header2, Description, Price, SalePrice, Cta,
}

// TextKinds lists the text stack in its fixed vertical order.
var TextKinds = []ElementKind{Header1, Header2, Description, Price, SalePrice, Cta}

// ParseElementKind resolves a kind name case-insensitively. "logoImage" is
// accepted as an alias of Logo.
func ParseElementKind(s string) (ElementKind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "logoimage" {
		return Logo, nil
	}
	for _, k := range ElementKinds {
		if strings.ToLower(string(k)) == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// IsText reports whether the kind carries text content.
func (k ElementKind) IsText() bool {
	switch k {
	case ProductImage, Logo:
		return false
	default:
		return true
	}
}

// Typography is the font family and pixel size of a text element.
type Typography struct {
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
}

// Element is one overlay layer. Text kinds use Text and Typography, image
// kinds use Image.
type Element struct {
	Kind       ElementKind `json:"kind"`
	Text       string      `json:"text,omitempty"`
	Image      *ImageRef   `json:"image,omitempty"`
	Typography Typography  `json:"typography,omitempty"`
	Offset     Offset      `json:"offset"`
	Scale      float64     `json:"scale"`
}

// NewElement returns an element of the given kind at its default position.
func NewElement(kind ElementKind) Element {
	return Element{Kind: kind, Scale: DefaultScale}
}

// HasContent reports whether the element is rendered at all.
func (e Element) HasContent() bool {
	if e.Kind.IsText() {
		return strings.TrimSpace(e.Text) != ""
	}
	return e.Image != nil && !e.Image.IsZero()
}

// EffectiveScale returns the scale with the zero value treated as default.
func (e Element) EffectiveScale() float64 {
	if e.Scale == 0 {
		return DefaultScale
	}
	return clampScale(e.Scale)
}

// ScaleUp grows the element by one step. There is no ceiling.
func (e *Element) ScaleUp() {
	e.Scale = roundScale(e.EffectiveScale() + ScaleStep)
}

// ScaleDown shrinks the element by one step, never below MinScale.
func (e *Element) ScaleDown() {
	e.Scale = clampScale(roundScale(e.EffectiveScale() - ScaleStep))
}

// MoveTo replaces the offset. Offsets are unbounded.
func (e *Element) MoveTo(o Offset) {
	e.Offset = o
}

func clampScale(s float64) float64 {
	if s < MinScale || math.IsNaN(s) {
		return MinScale
	}
	return s
}

// roundScale keeps repeated steps from accumulating float drift.
func roundScale(s float64) float64 {
	return math.Round(s*1000) / 1000
}
