package domain

import (
	"errors"
	"testing"
)

func TestScaleDownNeverBelowMinimum(t *testing.T) {
	el := NewElement(Header1)
	for i := 0; i < 100; i++ {
		el.ScaleDown()
		if el.Scale < MinScale {
			t.Fatalf("step %d: Scale = %v, below %v", i, el.Scale, MinScale)
		}
	}
	if el.Scale != MinScale {
		t.Fatalf("Scale = %v, want %v", el.Scale, MinScale)
	}
}

func TestScaleStepsStayExact(t *testing.T) {
	el := NewElement(Logo)
	for i := 0; i < 4; i++ {
		el.ScaleUp()
	}
	if el.Scale != 1.2 {
		t.Fatalf("Scale = %v, want 1.2", el.Scale)
	}
	el.ScaleDown()
	if el.Scale != 1.15 {
		t.Fatalf("Scale = %v, want 1.15", el.Scale)
	}
}

func TestEffectiveScaleTreatsZeroAsDefault(t *testing.T) {
	if got := (Element{Kind: Cta}).EffectiveScale(); got != DefaultScale {
		t.Fatalf("EffectiveScale = %v, want %v", got, DefaultScale)
	}
}

func TestMoveToIsIdempotent(t *testing.T) {
	el := NewElement(Price)
	o := Offset{X: -300, Y: 5000}
	el.MoveTo(o)
	el.MoveTo(o)
	if el.Offset != o {
		t.Fatalf("Offset = %+v, want %+v", el.Offset, o)
	}
}

func TestHasContent(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want bool
	}{
		{name: "blank text", el: Element{Kind: Header2, Text: "   "}, want: false},
		{name: "text", el: Element{Kind: Header2, Text: "Now"}, want: true},
		{name: "no image", el: Element{Kind: ProductImage}, want: false},
		{name: "empty ref", el: Element{Kind: Logo, Image: &ImageRef{}}, want: false},
		{name: "image", el: Element{Kind: Logo, Image: InlineRef("image/png", []byte("x"))}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.el.HasContent(); got != tc.want {
				t.Fatalf("HasContent = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseElementKind(t *testing.T) {
	if k, err := ParseElementKind("logoImage"); err != nil || k != Logo {
		t.Fatalf("ParseElementKind(logoImage) = %q, %v", k, err)
	}
	if k, err := ParseElementKind("SALEPRICE"); err != nil || k != SalePrice {
		t.Fatalf("ParseElementKind(SALEPRICE) = %q, %v", k, err)
	}
	if _, err := ParseElementKind("banner"); !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("ParseElementKind(banner) error = %v", err)
	}
}
