package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	sdk "google.golang.org/genai"

	"adstudio/internal/domain"
)

type fakeGenerator struct {
	generate func(ctx context.Context, prompt string, schema *sdk.Schema) (string, error)
}

func (f fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *sdk.Schema) (string, error) {
	if f.generate != nil {
		return f.generate(ctx, prompt, schema)
	}
	return "", errors.New("generate not implemented")
}

func TestGeminiCopywriterSendsSchema(t *testing.T) {
	var gotPrompt string
	var gotSchema *sdk.Schema
	writer, err := NewGeminiCopywriter(fakeGenerator{generate: func(ctx context.Context, prompt string, schema *sdk.Schema) (string, error) {
		gotPrompt, gotSchema = prompt, schema
		return ` {"header1":"Go Fast","header2":"Ride further","description":"Electric bikes for the city.","cta":"Ride Now"} `, nil
	}})
	if err != nil {
		t.Fatalf("NewGeminiCopywriter returned error: %v", err)
	}
	got, err := writer.WriteCopy(context.Background(), "e-bike shop")
	if err != nil {
		t.Fatalf("WriteCopy returned error: %v", err)
	}
	want := domain.AdCopy{Header1: "Go Fast", Header2: "Ride further", Description: "Electric bikes for the city.", Cta: "Ride Now"}
	if got != want {
		t.Fatalf("WriteCopy = %+v, want %+v", got, want)
	}
	if !strings.Contains(gotPrompt, `Brief: "e-bike shop"`) || !strings.Contains(gotPrompt, "max 5 words") {
		t.Fatalf("prompt = %q", gotPrompt)
	}
	if gotSchema == nil || len(gotSchema.Required) != 3 {
		t.Fatalf("schema = %+v", gotSchema)
	}
}

func TestGeminiCopywriterMalformedReply(t *testing.T) {
	writer, _ := NewGeminiCopywriter(fakeGenerator{generate: func(context.Context, string, *sdk.Schema) (string, error) {
		return "not json at all", nil
	}})
	if _, err := writer.WriteCopy(context.Background(), "x"); !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("WriteCopy error = %v, want ErrGenerationFailed", err)
	}
}

func TestStaticCopywriter(t *testing.T) {
	got, err := NewStaticCopywriter().WriteCopy(context.Background(), "handmade leather wallets for busy travelers who love quality")
	if err != nil {
		t.Fatalf("WriteCopy returned error: %v", err)
	}
	if got.Header1 != "Handmade Leather Wallets For Busy" {
		t.Fatalf("Header1 = %q", got.Header1)
	}
	if got.Header2 != "Travelers Who Love Quality" {
		t.Fatalf("Header2 = %q", got.Header2)
	}
	if got.Cta == "" || got.Description == "" {
		t.Fatalf("WriteCopy = %+v", got)
	}
}

func TestExtractJSONFragment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{in: "Sure! {\"a\":1} hope that helps", want: `{"a":1}`},
		{in: "   ", want: ""},
	}
	for _, tc := range tests {
		if got := extractJSONFragment(tc.in); got != tc.want {
			t.Fatalf("extractJSONFragment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
