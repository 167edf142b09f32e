package domain

import (
	"strings"
)

// CreativeStyle is the aesthetic tag picked for a campaign.
type CreativeStyle string

const (
	StyleMinimalist CreativeStyle = "Minimalist & Clean"
	StyleBold       CreativeStyle = "Bold & Modern"
	StyleElegant    CreativeStyle = "Elegant & Luxurious"
	StylePlayful    CreativeStyle = "Playful & Vibrant"
	StyleFuturistic CreativeStyle = "Futuristic & Techy"
	StyleRetro      CreativeStyle = "Retro & Vintage"
	StyleNatural    CreativeStyle = "Natural & Organic"
	StyleCorporate  CreativeStyle = "Corporate & Professional"
	StyleGrunge     CreativeStyle = "Grunge & Edgy"
	StyleHandDrawn  CreativeStyle = "Hand-drawn & Artisanal"
)

const (
	NoCharacterStyle = "Default (No specific character style)"
	DefaultAdType    = "Social Media Post"
)

var CreativeStyles = []CreativeStyle{
	StyleMinimalist, StyleBold, StyleElegant, StylePlayful, StyleFuturistic,
	StyleRetro, StyleNatural, StyleCorporate, StyleGrunge, StyleHandDrawn,
}

// CTAStyle is the button styling of the call to action.
type CTAStyle struct {
	TextColor       string  `json:"textColor"`
	BackgroundColor string  `json:"backgroundColor"`
	Padding         float64 `json:"padding"`
	CornerRadius    float64 `json:"cornerRadius"`
}

// CompositionRequest is the brief driving generation and the initial content
// of every overlay.
type CompositionRequest struct {
	AdName             string                     `json:"adName"`
	AdType             string                     `json:"adType,omitempty"`
	Brief              string                     `json:"brief,omitempty"`
	Header1            string                     `json:"header1"`
	Header2            string                     `json:"header2,omitempty"`
	Description        string                     `json:"description,omitempty"`
	Price              string                     `json:"price,omitempty"`
	SalePrice          string                     `json:"salePrice,omitempty"`
	Cta                string                     `json:"cta,omitempty"`
	Prompt             string                     `json:"prompt,omitempty"`
	CreativeStyle      CreativeStyle              `json:"creativeStyle"`
	CharacterStyle     string                     `json:"characterStyle,omitempty"`
	BackgroundImage    *ImageRef                  `json:"backgroundImage,omitempty"`
	ProductImage       *ImageRef                  `json:"productImage,omitempty"`
	TemplateStyleImage *ImageRef                  `json:"templateStyleImage,omitempty"`
	LogoImage          *ImageRef                  `json:"logoImage,omitempty"`
	RecreateTemplate   bool                       `json:"recreateTemplate,omitempty"`
	AdSizes            []AspectRatio              `json:"adSizes"`
	NumberOfAds        int                        `json:"numberOfAds"`
	CTAStyle           CTAStyle                   `json:"ctaStyle"`
	Typography         map[ElementKind]Typography `json:"typography,omitempty"`
	ClientID           string                     `json:"clientId,omitempty"`
}

// PrepareForGeneration recomputes derived fields. It must run right before a
// request is handed to the generation adapter.
func (r *CompositionRequest) PrepareForGeneration() {
	r.NumberOfAds = len(r.AdSizes)
}

// HasCharacterStyle reports whether a character constraint applies.
func (r *CompositionRequest) HasCharacterStyle() bool {
	s := strings.TrimSpace(r.CharacterStyle)
	return s != "" && s != NoCharacterStyle
}

// TextFor returns the request text backing a text element kind.
func (r *CompositionRequest) TextFor(kind ElementKind) string {
	switch kind {
	case Header1:
		return r.Header1
	case Header2:
		return r.Header2
	case Description:
		return r.Description
	case Price:
		return r.Price
	case SalePrice:
		return r.SalePrice
	case Cta:
		return r.Cta
	}
	return ""
}

// ImageFor returns the overlay image backing an image element kind.
func (r *CompositionRequest) ImageFor(kind ElementKind) *ImageRef {
	switch kind {
	case ProductImage:
		return r.ProductImage
	case Logo:
		return r.LogoImage
	}
	return nil
}

// TypographyFor returns the typography of a text kind, falling back to the
// hardcoded defaults.
func (r *CompositionRequest) TypographyFor(kind ElementKind) Typography {
	t := r.Typography[kind]
	fallback := FallbackTypography[kind]
	if strings.TrimSpace(t.FontFamily) == "" {
		t.FontFamily = fallback.FontFamily
	}
	if t.FontSize <= 0 {
		t.FontSize = fallback.FontSize
	}
	return t
}

// Elements builds the default overlay set from the request content.
func (r *CompositionRequest) Elements() map[ElementKind]Element {
	out := make(map[ElementKind]Element, len(ElementKinds))
	for _, kind := range ElementKinds {
		el := NewElement(kind)
		if kind.IsText() {
			el.Text = r.TextFor(kind)
			el.Typography = r.TypographyFor(kind)
		} else {
			el.Image = r.ImageFor(kind)
		}
		out[kind] = el
	}
	return out
}

// ImageRefs returns pointers to every image slot so callers can rewrite them
// in place.
func (r *CompositionRequest) ImageRefs() []**ImageRef {
	return []**ImageRef{&r.BackgroundImage, &r.ProductImage, &r.TemplateStyleImage, &r.LogoImage}
}

// AdCopy is generated marketing copy.
type AdCopy struct {
	Header1     string `json:"header1"`
	Header2     string `json:"header2,omitempty"`
	Description string `json:"description"`
	Cta         string `json:"cta"`
}

// ApplyCopy overwrites the four copy fields of the request. An absent
// header2 leaves the current one untouched.
func (r *CompositionRequest) ApplyCopy(c AdCopy) {
	r.Header1 = c.Header1
	if c.Header2 != "" {
		r.Header2 = c.Header2
	}
	r.Description = c.Description
	r.Cta = c.Cta
}

// Clone returns a copy whose slices and maps are not shared. Image references
// are shared; they are immutable once built.
func (r CompositionRequest) Clone() CompositionRequest {
	out := r
	out.AdSizes = append([]AspectRatio(nil), r.AdSizes...)
	if r.Typography != nil {
		out.Typography = make(map[ElementKind]Typography, len(r.Typography))
		for k, v := range r.Typography {
			out.Typography[k] = v
		}
	}
	return out
}
