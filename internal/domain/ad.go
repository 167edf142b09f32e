package domain

import "time"

// Background is the generated image for one requested aspect ratio.
type Background struct {
	AspectRatio AspectRatio `json:"aspectRatio"`
	Image       *ImageRef   `json:"image"`
}

// ComposableAd is a background per aspect ratio plus the positioned overlays.
// An empty ID means the ad has never been saved.
type ComposableAd struct {
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name"`
	CreatedAt   time.Time          `json:"createdAt"`
	FolderID    string             `json:"folderId,omitempty"`
	Request     CompositionRequest `json:"formData"`
	Backgrounds []Background       `json:"backgrounds"`
	Elements    []Element          `json:"elements"`
}

// NewComposableAd builds an unsaved ad from a request and its generated
// backgrounds. Every element starts at its default position.
func NewComposableAd(req CompositionRequest, backgrounds []Background) *ComposableAd {
	ad := &ComposableAd{
		Name:        req.AdName,
		Request:     req,
		Backgrounds: backgrounds,
	}
	defaults := req.Elements()
	for _, kind := range ElementKinds {
		ad.Elements = append(ad.Elements, defaults[kind])
	}
	return ad
}

// IsPersisted reports whether the ad has been saved at least once.
func (a *ComposableAd) IsPersisted() bool {
	return a.ID != ""
}

// Element returns the element of a kind. Ads missing an element kind report
// its default.
func (a *ComposableAd) Element(kind ElementKind) Element {
	for _, el := range a.Elements {
		if el.Kind == kind {
			return el
		}
	}
	el := NewElement(kind)
	if kind.IsText() {
		el.Text = a.Request.TextFor(kind)
		el.Typography = a.Request.TypographyFor(kind)
	} else {
		el.Image = a.Request.ImageFor(kind)
	}
	return el
}

// SetElement replaces the element of the same kind, appending if absent.
func (a *ComposableAd) SetElement(el Element) {
	for i := range a.Elements {
		if a.Elements[i].Kind == el.Kind {
			a.Elements[i] = el
			return
		}
	}
	a.Elements = append(a.Elements, el)
}

// Background returns the background at a zero-based card index.
func (a *ComposableAd) Background(index int) (Background, bool) {
	if index < 0 || index >= len(a.Backgrounds) {
		return Background{}, false
	}
	return a.Backgrounds[index], true
}

// ImageRefs returns pointers to every image slot of the ad, including the
// request snapshot, so callers can rewrite them in place.
func (a *ComposableAd) ImageRefs() []**ImageRef {
	refs := a.Request.ImageRefs()
	for i := range a.Backgrounds {
		refs = append(refs, &a.Backgrounds[i].Image)
	}
	for i := range a.Elements {
		refs = append(refs, &a.Elements[i].Image)
	}
	return refs
}

// HasTransient reports whether any image still needs inlining.
func (a *ComposableAd) HasTransient() bool {
	for _, ref := range a.ImageRefs() {
		if (*ref).IsTransient() {
			return true
		}
	}
	return false
}

// Folder groups ads. Deleting one never deletes its ads.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BrandColors is a client's palette.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

// Client is a brand profile used to seed new requests.
type Client struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Logo                *ImageRef   `json:"logo,omitempty"`
	Colors              BrandColors `json:"colors"`
	HeaderFontFamily    string      `json:"headerFontFamily"`
	Header1FontSize     float64     `json:"header1FontSize"`
	Header2FontSize     float64     `json:"header2FontSize"`
	BodyFontFamily      string      `json:"bodyFontFamily"`
	DescriptionFontSize float64     `json:"descriptionFontSize"`
	CtaFontFamily       string      `json:"ctaFontFamily"`
	CtaFontSize         float64     `json:"ctaFontSize"`
}

// NewClient returns a profile carrying the default palette and typography.
func NewClient(name string) Client {
	return Client{
		Name:                name,
		Colors:              BrandColors{Primary: "#000000", Secondary: "#ffffff", Tertiary: "#808080"},
		HeaderFontFamily:    FontMontserrat,
		Header1FontSize:     48,
		Header2FontSize:     32,
		BodyFontFamily:      FontRoboto,
		DescriptionFontSize: 18,
		CtaFontFamily:       FontMontserrat,
		CtaFontSize:         20,
	}
}

// Template is a reusable request snapshot with a preview image.
type Template struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	PreviewImage string             `json:"previewImage"`
	Request      CompositionRequest `json:"formData"`
	BuiltIn      bool               `json:"builtIn,omitempty"`
}

// TemplateFromAd snapshots an ad as a user template. The first background
// becomes the preview and the template style image.
func TemplateFromAd(ad *ComposableAd, name, description string) Template {
	req := ad.Request.Clone()
	req.AdName = ""
	t := Template{Name: name, Description: description, Request: req}
	if bg, ok := ad.Background(0); ok && bg.Image != nil {
		t.PreviewImage = bg.Image.DataURL()
		t.Request.TemplateStyleImage = bg.Image
		t.Request.RecreateTemplate = true
	}
	return t
}
