package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"adstudio/internal/domain"
)

// Format is an export raster format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"

	JPEGQuality = 92
	WebPQuality = 90
)

// ParseFormat resolves a format name. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// MIMEType returns the content type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/png"
	}
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case FormatWebP:
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, WebPQuality)
		if err != nil {
			return fmt.Errorf("compositor: webp options: %w", err)
		}
		return webp.Encode(w, img, opts)
	default:
		return imaging.Encode(w, img, imaging.PNG)
	}
}

// Export is one encoded card ready for download.
type Export struct {
	Filename string
	MIMEType string
	Data     []byte
}

// ExportFilename names the download of the card at a zero-based index.
func ExportFilename(adName string, index int, f Format) string {
	slug := Slug(adName)
	if slug == "" {
		slug = "ad"
	}
	return fmt.Sprintf("%s-%d.%s", slug, index+1, f.Extension())
}

// Slug lowercases s, strips diacritics and joins words with dashes.
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}

// ExportCard flattens and encodes the card at a zero-based index.
func (r *Renderer) ExportCard(ctx context.Context, ad *domain.ComposableAd, index int, f Format) (Export, error) {
	cards := Preview(ad)
	if len(cards) == 0 {
		return Export{}, ErrNoCards
	}
	if index < 0 || index >= len(cards) {
		return Export{}, fmt.Errorf("card %d: %w", index+1, domain.ErrNotFound)
	}
	img, err := r.Flatten(ctx, cards[index])
	if err != nil {
		return Export{}, err
	}
	return encodeExport(ad.Name, index, img, f)
}

// ExportAll flattens and encodes every card of the ad in card order.
func (r *Renderer) ExportAll(ctx context.Context, ad *domain.ComposableAd, f Format) ([]Export, error) {
	cards := Preview(ad)
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	imgs, err := r.FlattenAll(ctx, cards)
	if err != nil {
		return nil, err
	}
	out := make([]Export, 0, len(imgs))
	for i, img := range imgs {
		exp, err := encodeExport(ad.Name, i, img, f)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, nil
}

func encodeExport(adName string, index int, img image.Image, f Format) (Export, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return Export{}, fmt.Errorf("compositor: encode %s: %w", f, err)
	}
	return Export{
		Filename: ExportFilename(adName, index, f),
		MIMEType: f.MIMEType(),
		Data:     buf.Bytes(),
	}, nil
}
