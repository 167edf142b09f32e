package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewCompositionRequestPrecedence(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	settings := DefaultSettings()
	settings.DefaultCreativeStyle = StyleRetro
	settings.DefaultCtaPadding = 20
	settings.DefaultPrompt = "sunlit kitchen"

	client := NewClient("Acme")
	client.ID = "client-1"
	client.HeaderFontFamily = FontOswald
	client.Header1FontSize = 60
	client.Logo = InlineRef("image/png", []byte("logo"))

	edit := CompositionRequest{
		Header1:    "Hello",
		Typography: map[ElementKind]Typography{Header1: {FontSize: 72}},
	}
	req := NewCompositionRequest(edit, &client, settings, now)

	if req.AdName != "Campaign 3/7/2024" {
		t.Fatalf("AdName = %q", req.AdName)
	}
	if req.CreativeStyle != StyleRetro {
		t.Fatalf("CreativeStyle = %q, want %q", req.CreativeStyle, StyleRetro)
	}
	if req.CTAStyle.Padding != 20 || req.CTAStyle.CornerRadius != 8 {
		t.Fatalf("CTAStyle = %+v", req.CTAStyle)
	}
	if req.Prompt != "sunlit kitchen" {
		t.Fatalf("Prompt = %q", req.Prompt)
	}
	if got := req.Typography[Header1]; got.FontFamily != FontOswald || got.FontSize != 72 {
		t.Fatalf("header1 typography = %+v", got)
	}
	if got := req.Typography[Price]; got != FallbackTypography[Price] {
		t.Fatalf("price typography = %+v", got)
	}
	if req.ClientID != "client-1" || req.LogoImage != client.Logo {
		t.Fatal("client defaults not applied")
	}
	if edit.Typography[Header1].FontFamily != "" {
		t.Fatal("edit was mutated")
	}

	settings.DefaultCreativeStyle = StyleGrunge
	if req.CreativeStyle != StyleRetro {
		t.Fatal("request must not follow later settings changes")
	}
}

func TestMergeSettingsKeepsDefaults(t *testing.T) {
	s, err := MergeSettings([]byte(`{"defaultCtaTextColor":"#111111"}`))
	if err != nil {
		t.Fatalf("MergeSettings returned error: %v", err)
	}
	if s.DefaultCtaTextColor != "#111111" || s.DefaultCtaBackgroundColor != "#000000" {
		t.Fatalf("MergeSettings = %+v", s)
	}
	if _, err := MergeSettings([]byte("{")); err == nil {
		t.Fatal("expected error for malformed record")
	}
}

func TestApplyCopyKeepsHeader2WhenAbsent(t *testing.T) {
	req := CompositionRequest{Header2: "Keep me"}
	req.ApplyCopy(AdCopy{Header1: "New", Description: "Desc", Cta: "Buy"})
	if req.Header1 != "New" || req.Header2 != "Keep me" || req.Cta != "Buy" {
		t.Fatalf("ApplyCopy = %+v", req)
	}
}

func TestResolveStylingLeavesValidatedFields(t *testing.T) {
	client := NewClient("Acme")
	client.CtaFontFamily = FontPoppins
	req := ResolveStyling(CompositionRequest{Header1: "Big Sale"}, &client, DefaultSettings())

	if req.AdName != "" || len(req.AdSizes) != 0 {
		t.Fatalf("validated fields filled: name %q sizes %v", req.AdName, req.AdSizes)
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected the empty ad name to fail validation")
	}
	if req.AdType != DefaultAdType || req.CTAStyle.Padding != 12 {
		t.Fatalf("styling not resolved: %+v", req)
	}
	if got := req.Typography[Cta].FontFamily; got != FontPoppins {
		t.Fatalf("cta font = %q, want %q", got, FontPoppins)
	}
}

func TestMergeSettingsOfPatch(t *testing.T) {
	padding := 20.0
	raw, err := json.Marshal(SettingsPatch{DefaultCtaPadding: &padding})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"defaultCtaPadding":20}` {
		t.Fatalf("patch json = %s", raw)
	}
	got, err := MergeSettings(raw)
	if err != nil {
		t.Fatalf("MergeSettings returned error: %v", err)
	}
	want := DefaultSettings()
	want.DefaultCtaPadding = 20
	if got != want {
		t.Fatalf("MergeSettings = %+v, want %+v", got, want)
	}
}
