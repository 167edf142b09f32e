package compositor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"adstudio/internal/domain"
)

func solidPNG(w, h int) *domain.ImageRef {
	return colorPNG(w, h, color.NRGBA{R: 220, A: 255})
}

func colorPNG(w, h int, c color.NRGBA) *domain.ImageRef {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return domain.InlineRef("image/png", buf.Bytes())
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name   string
		adName string
		index  int
		format Format
		want   string
	}{
		{name: "slugged", adName: "Summer Sale!", index: 0, format: FormatPNG, want: "summer-sale-1.png"},
		{name: "unnamed", adName: "  ", index: 1, format: FormatJPEG, want: "ad-2.jpg"},
		{name: "diacritics", adName: "Crème Brûlée", index: 2, format: FormatWebP, want: "creme-brulee-3.webp"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExportFilename(tc.adName, tc.index, tc.format); got != tc.want {
				t.Fatalf("ExportFilename = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPNG, "PNG": FormatPNG, "jpg": FormatJPEG, "webp": FormatWebP} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("tiff"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("ParseFormat(tiff) error = %v, want ErrValidation", err)
	}
}

func TestFlattenFillsCanvasWithBackground(t *testing.T) {
	r := NewRenderer(Options{})
	card := Preview(sampleAd("16:9"))[0]

	img, err := r.Flatten(context.Background(), card)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if got := img.Bounds().Size(); got != (image.Point{X: 1080, Y: 608}) {
		t.Fatalf("size = %v, want 1080x608", got)
	}
	cr, cg, cb, ca := img.At(4, 4).RGBA()
	if ca>>8 != 255 || cr>>8 < 200 || cg>>8 > 30 || cb>>8 > 30 {
		t.Fatalf("corner pixel = %d,%d,%d,%d, want the red background", cr>>8, cg>>8, cb>>8, ca>>8)
	}
}

func isBlue(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a>>8 == 255 && b>>8 > 200 && r>>8 < 30 && g>>8 < 30
}

func isRed(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a>>8 == 255 && r>>8 > 200 && g>>8 < 30 && b>>8 < 30
}

func TestFlattenHonoursOffsetAndScale(t *testing.T) {
	ad := sampleAd("1:1")
	ad.Request.ProductImage = colorPNG(20, 20, color.NRGBA{B: 230, A: 255})
	ad = domain.NewComposableAd(ad.Request, ad.Backgrounds)
	card := Preview(ad)[0]

	if err := card.Drag(domain.ProductImage, domain.Offset{X: 700, Y: 700}); err != nil {
		t.Fatalf("Drag returned error: %v", err)
	}
	if err := card.ScaleUp(domain.ProductImage); err != nil {
		t.Fatalf("ScaleUp returned error: %v", err)
	}

	r := NewRenderer(Options{})
	layout, err := r.Layout(card)
	if err != nil {
		t.Fatalf("Layout returned error: %v", err)
	}
	p, ok := layout.Placement(domain.ProductImage)
	if !ok {
		t.Fatal("product image has no placement")
	}
	el := card.Element(domain.ProductImage)
	box := p.Box.Transformed(el.Offset, el.EffectiveScale())
	if want := (Box{X: 696.25, Y: 696.25, W: 157.5, H: 157.5}); box != want {
		t.Fatalf("transformed box = %+v, want %+v", box, want)
	}

	img, err := r.Flatten(context.Background(), card)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	// 698 and 852 lie inside the scaled box but outside the unscaled 700..850.
	for _, pt := range []image.Point{{775, 775}, {698, 775}, {852, 775}, {775, 698}} {
		if c := img.At(pt.X, pt.Y); !isBlue(c) {
			t.Fatalf("pixel %v = %v, want the product overlay", pt, c)
		}
	}
	for _, pt := range []image.Point{{75, 75}, {10, 10}, {690, 775}, {860, 775}} {
		if c := img.At(pt.X, pt.Y); !isRed(c) {
			t.Fatalf("pixel %v = %v, want the background", pt, c)
		}
	}
}

func TestFlattenRequiresBackground(t *testing.T) {
	ad := sampleAd("1:1")
	ad.Backgrounds[0].Image = nil
	_, err := NewRenderer(Options{}).Flatten(context.Background(), Preview(ad)[0])
	if !errors.Is(err, domain.ErrAssetUnreadable) {
		t.Fatalf("Flatten error = %v, want ErrAssetUnreadable", err)
	}
}

func TestExportAllEncodesEveryCard(t *testing.T) {
	r := NewRenderer(Options{})
	ad := sampleAd("1:1", "9:16")

	exports, err := r.ExportAll(context.Background(), ad, FormatPNG)
	if err != nil {
		t.Fatalf("ExportAll returned error: %v", err)
	}
	if len(exports) != 2 {
		t.Fatalf("len(exports) = %d, want 2", len(exports))
	}
	wantNames := []string{"summer-sale-1.png", "summer-sale-2.png"}
	wantSizes := []image.Point{{X: 1080, Y: 1080}, {X: 608, Y: 1080}}
	for i, exp := range exports {
		if exp.Filename != wantNames[i] || exp.MIMEType != "image/png" {
			t.Fatalf("export %d = %s (%s)", i, exp.Filename, exp.MIMEType)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(exp.Data))
		if err != nil {
			t.Fatalf("decode export %d: %v", i, err)
		}
		if got := (image.Point{X: cfg.Width, Y: cfg.Height}); got != wantSizes[i] {
			t.Fatalf("export %d size = %v, want %v", i, got, wantSizes[i])
		}
	}

	if _, err := r.ExportCard(context.Background(), ad, 5, FormatPNG); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("ExportCard(5) error = %v, want ErrNotFound", err)
	}
	if _, err := r.ExportAll(context.Background(), &domain.ComposableAd{}, FormatPNG); !errors.Is(err, ErrNoCards) {
		t.Fatalf("ExportAll(empty) error = %v, want ErrNoCards", err)
	}
}
