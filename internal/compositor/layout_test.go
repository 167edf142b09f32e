package compositor

import (
	"image"
	"math"
	"testing"

	"adstudio/internal/domain"
)

// fixedMeasurer gives every rune half the font size in width and lines 1.2x
// the font size in height.
type fixedMeasurer struct{}

func (fixedMeasurer) Wrap(s string, typo domain.Typography, _ Weight, maxWidth float64) TextBlock {
	return wrapWith(s, maxWidth, typo.FontSize*1.2, func(line string) float64 {
		return float64(len([]rune(line))) * typo.FontSize / 2
	})
}

func textElement(kind domain.ElementKind, text string, size float64) domain.Element {
	el := domain.NewElement(kind)
	el.Text = text
	el.Typography = domain.Typography{FontFamily: domain.FontRoboto, FontSize: size}
	return el
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertBox(t *testing.T, name string, got, want Box) {
	t.Helper()
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) || !approx(got.W, want.W) || !approx(got.H, want.H) {
		t.Fatalf("%s = %+v, want %+v", name, got, want)
	}
}

func TestComputeLayoutCentersTextStack(t *testing.T) {
	layout := ComputeLayout(LayoutInput{
		Width:  1000,
		Height: 1000,
		Elements: map[domain.ElementKind]domain.Element{
			domain.Header1: textElement(domain.Header1, "ab", 40),
			domain.Header2: textElement(domain.Header2, "   ", 32),
			domain.Cta:     textElement(domain.Cta, "Go", 20),
		},
		CTA: domain.CTAStyle{Padding: 10},
	}, fixedMeasurer{})

	h1, ok := layout.Placement(domain.Header1)
	if !ok {
		t.Fatal("header1 missing from layout")
	}
	assertBox(t, "header1", h1.Box, Box{X: 480, Y: 450, W: 40, H: 48})

	if _, ok := layout.Placement(domain.Header2); ok {
		t.Fatal("blank header2 should take no space")
	}

	cta, _ := layout.Placement(domain.Cta)
	assertBox(t, "cta", cta.Box, Box{X: 465, Y: 506, W: 70, H: 44})
	assertBox(t, "cta content", cta.Content, Box{X: 490, Y: 516, W: 20, H: 24})
}

func TestComputeLayoutPlacesPricesSideBySide(t *testing.T) {
	layout := ComputeLayout(LayoutInput{
		Width:  1000,
		Height: 1000,
		Elements: map[domain.ElementKind]domain.Element{
			domain.Price:     textElement(domain.Price, "10", 20),
			domain.SalePrice: textElement(domain.SalePrice, "8", 20),
		},
	}, fixedMeasurer{})

	price, _ := layout.Placement(domain.Price)
	sale, _ := layout.Placement(domain.SalePrice)
	assertBox(t, "price", price.Box, Box{X: 465, Y: 488, W: 20, H: 24})
	assertBox(t, "salePrice", sale.Box, Box{X: 501, Y: 484, W: 34, H: 32})
	if !approx(sale.Content.X, 513) || !approx(sale.Content.Y, 488) {
		t.Fatalf("sale content = %+v, want badge padding applied", sale.Content)
	}
}

func TestComputeLayoutWrapsToStackWidth(t *testing.T) {
	text := "aaaaaaaaaa bbbbbbbbbb cccccccccc"
	layout := ComputeLayout(LayoutInput{
		Width:  200,
		Height: 400,
		Elements: map[domain.ElementKind]domain.Element{
			domain.Description: textElement(domain.Description, text, 10),
		},
	}, fixedMeasurer{})

	desc, _ := layout.Placement(domain.Description)
	if len(desc.Text.Lines) != 2 {
		t.Fatalf("lines = %q, want 2 lines", desc.Text.Lines)
	}
	if desc.Text.Lines[0] != "aaaaaaaaaa bbbbbbbbbb" || desc.Text.Lines[1] != "cccccccccc" {
		t.Fatalf("lines = %q", desc.Text.Lines)
	}
	if desc.Box.W > 200-2*StackPadding {
		t.Fatalf("width %v exceeds the padded stack", desc.Box.W)
	}
}

func TestComputeLayoutImageLayers(t *testing.T) {
	ref := domain.InlineRef("image/png", []byte("x"))
	product := domain.NewElement(domain.ProductImage)
	product.Image = ref
	logo := domain.NewElement(domain.Logo)
	logo.Image = ref

	layout := ComputeLayout(LayoutInput{
		Width:  1080,
		Height: 1080,
		Elements: map[domain.ElementKind]domain.Element{
			domain.ProductImage: product,
			domain.Logo:         logo,
		},
		ImageSizes: map[domain.ElementKind]image.Point{domain.ProductImage: {X: 300, Y: 600}},
	}, fixedMeasurer{})

	p, _ := layout.Placement(domain.ProductImage)
	assertBox(t, "product", p.Box, Box{W: 150, H: 300})
	l, _ := layout.Placement(domain.Logo)
	assertBox(t, "logo", l.Box, Box{W: 100, H: 100})
}

func TestBoxTransformedScalesAboutCenter(t *testing.T) {
	got := Box{W: 100, H: 50}.Transformed(domain.Offset{X: 10, Y: 20}, 2)
	assertBox(t, "transformed", got, Box{X: -40, Y: -5, W: 200, H: 100})
}

func TestWrapKeepsLongWordOnItsOwnLine(t *testing.T) {
	block := wrapWith("a verylongword b", 3, 1, func(s string) float64 { return float64(len(s)) })
	want := []string{"a", "verylongword", "b"}
	if len(block.Lines) != len(want) {
		t.Fatalf("lines = %q, want %q", block.Lines, want)
	}
	for i := range want {
		if block.Lines[i] != want[i] {
			t.Fatalf("lines = %q, want %q", block.Lines, want)
		}
	}
	if block.Width() != 12 {
		t.Fatalf("Width = %v, want 12", block.Width())
	}
}
