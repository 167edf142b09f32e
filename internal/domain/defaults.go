package domain

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	FontRoboto     = "Roboto"
	FontOpenSans   = "Open Sans"
	FontLato       = "Lato"
	FontMontserrat = "Montserrat"
	FontOswald     = "Oswald"
	FontPoppins    = "Poppins"
)

// FontFamilies is the font picker list.
var FontFamilies = []string{FontRoboto, FontOpenSans, FontLato, FontMontserrat, FontOswald, FontPoppins}

// FallbackTypography applies when neither an edit, a client nor settings
// name a value.
var FallbackTypography = map[ElementKind]Typography{
	Header1:     {FontFamily: FontMontserrat, FontSize: 48},
	Header2:     {FontFamily: FontMontserrat, FontSize: 32},
	Description: {FontFamily: FontRoboto, FontSize: 18},
	Price:       {FontFamily: FontRoboto, FontSize: 24},
	SalePrice:   {FontFamily: FontRoboto, FontSize: 28},
	Cta:         {FontFamily: FontMontserrat, FontSize: 20},
}

// Settings holds the process-wide defaults for new requests.
type Settings struct {
	DefaultPrompt             string        `json:"defaultPrompt"`
	DefaultCreativeStyle      CreativeStyle `json:"defaultCreativeStyle"`
	DefaultCtaTextColor       string        `json:"defaultCtaTextColor"`
	DefaultCtaBackgroundColor string        `json:"defaultCtaBackgroundColor"`
	DefaultCtaPadding         float64       `json:"defaultCtaPadding"`
	DefaultCtaCornerRadius    float64       `json:"defaultCtaCornerRadius"`
}

// DefaultSettings is returned before anything was ever stored.
func DefaultSettings() Settings {
	return Settings{
		DefaultPrompt:             "",
		DefaultCreativeStyle:      StyleMinimalist,
		DefaultCtaTextColor:       "#FFFFFF",
		DefaultCtaBackgroundColor: "#000000",
		DefaultCtaPadding:         12,
		DefaultCtaCornerRadius:    8,
	}
}

// SettingsPatch is a stored settings record. Nil fields are absent from the
// record and read back as their default.
type SettingsPatch struct {
	DefaultPrompt             *string        `json:"defaultPrompt,omitempty"`
	DefaultCreativeStyle      *CreativeStyle `json:"defaultCreativeStyle,omitempty"`
	DefaultCtaTextColor       *string        `json:"defaultCtaTextColor,omitempty"`
	DefaultCtaBackgroundColor *string        `json:"defaultCtaBackgroundColor,omitempty"`
	DefaultCtaPadding         *float64       `json:"defaultCtaPadding,omitempty"`
	DefaultCtaCornerRadius    *float64       `json:"defaultCtaCornerRadius,omitempty"`
}

// Patch returns a record carrying every field of s.
func (s Settings) Patch() SettingsPatch {
	return SettingsPatch{
		DefaultPrompt:             &s.DefaultPrompt,
		DefaultCreativeStyle:      &s.DefaultCreativeStyle,
		DefaultCtaTextColor:       &s.DefaultCtaTextColor,
		DefaultCtaBackgroundColor: &s.DefaultCtaBackgroundColor,
		DefaultCtaPadding:         &s.DefaultCtaPadding,
		DefaultCtaCornerRadius:    &s.DefaultCtaCornerRadius,
	}
}

// Apply returns base with every present field of p laid over it.
func (p SettingsPatch) Apply(base Settings) Settings {
	if p.DefaultPrompt != nil {
		base.DefaultPrompt = *p.DefaultPrompt
	}
	if p.DefaultCreativeStyle != nil {
		base.DefaultCreativeStyle = *p.DefaultCreativeStyle
	}
	if p.DefaultCtaTextColor != nil {
		base.DefaultCtaTextColor = *p.DefaultCtaTextColor
	}
	if p.DefaultCtaBackgroundColor != nil {
		base.DefaultCtaBackgroundColor = *p.DefaultCtaBackgroundColor
	}
	if p.DefaultCtaPadding != nil {
		base.DefaultCtaPadding = *p.DefaultCtaPadding
	}
	if p.DefaultCtaCornerRadius != nil {
		base.DefaultCtaCornerRadius = *p.DefaultCtaCornerRadius
	}
	return base
}

// MergeSettings overlays a stored, possibly partial, JSON record onto the
// defaults. Keys absent from stored keep their default value.
func MergeSettings(stored []byte) (Settings, error) {
	if len(stored) == 0 {
		return DefaultSettings(), nil
	}
	var p SettingsPatch
	if err := json.Unmarshal(stored, &p); err != nil {
		return DefaultSettings(), err
	}
	return p.Apply(DefaultSettings()), nil
}

// NewCompositionRequest initializes a form once with the precedence
// explicit edit > client default > settings default > hardcoded fallback.
// Later changes to the client or the settings do not affect the result.
func NewCompositionRequest(edit CompositionRequest, client *Client, settings Settings, now time.Time) CompositionRequest {
	req := edit.Clone()

	if strings.TrimSpace(req.AdName) == "" {
		req.AdName = "Campaign " + now.Format("1/2/2006")
	}
	if len(req.AdSizes) == 0 {
		req.AdSizes = []AspectRatio{StandardAdSizes[0].Ratio}
	}
	if req.Prompt == "" {
		req.Prompt = settings.DefaultPrompt
	}
	return ResolveStyling(req, client, settings)
}

// ResolveStyling fills the presentation fields a submitted request left
// empty: ad type, styles, CTA styling, typography and the client logo. The
// fields checked by Validate are never touched.
func ResolveStyling(edit CompositionRequest, client *Client, settings Settings) CompositionRequest {
	req := edit.Clone()

	if req.AdType == "" {
		req.AdType = DefaultAdType
	}
	req.CreativeStyle = CreativeStyle(firstNonEmpty(string(req.CreativeStyle), string(settings.DefaultCreativeStyle), string(StyleMinimalist)))
	if req.CharacterStyle == "" {
		req.CharacterStyle = NoCharacterStyle
	}

	fallback := DefaultSettings()
	req.CTAStyle.TextColor = firstNonEmpty(req.CTAStyle.TextColor, settings.DefaultCtaTextColor, fallback.DefaultCtaTextColor)
	req.CTAStyle.BackgroundColor = firstNonEmpty(req.CTAStyle.BackgroundColor, settings.DefaultCtaBackgroundColor, fallback.DefaultCtaBackgroundColor)
	req.CTAStyle.Padding = firstPositive(req.CTAStyle.Padding, settings.DefaultCtaPadding, fallback.DefaultCtaPadding)
	req.CTAStyle.CornerRadius = firstPositive(req.CTAStyle.CornerRadius, settings.DefaultCtaCornerRadius, fallback.DefaultCtaCornerRadius)

	var brand map[ElementKind]Typography
	if client != nil {
		req.ClientID = firstNonEmpty(req.ClientID, client.ID)
		if req.LogoImage.IsZero() && !client.Logo.IsZero() {
			req.LogoImage = client.Logo
		}
		brand = map[ElementKind]Typography{
			Header1:     {FontFamily: client.HeaderFontFamily, FontSize: client.Header1FontSize},
			Header2:     {FontFamily: client.HeaderFontFamily, FontSize: client.Header2FontSize},
			Description: {FontFamily: client.BodyFontFamily, FontSize: client.DescriptionFontSize},
			Cta:         {FontFamily: client.CtaFontFamily, FontSize: client.CtaFontSize},
		}
	}
	typo := make(map[ElementKind]Typography, len(TextKinds))
	for _, kind := range TextKinds {
		explicit := req.Typography[kind]
		b := brand[kind]
		f := FallbackTypography[kind]
		typo[kind] = Typography{
			FontFamily: firstNonEmpty(explicit.FontFamily, b.FontFamily, f.FontFamily),
			FontSize:   firstPositive(explicit.FontSize, b.FontSize, f.FontSize),
		}
	}
	req.Typography = typo
	return req
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
