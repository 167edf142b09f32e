package genai

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image/color"
	"strconv"

	"github.com/gogpu/gg"
)

// syntheticImage paints a deterministic striped backdrop sized to the
// request. The same prompt and size always produce the same bytes.
func (c *Client) syntheticImage(req ImageRequest) (Image, error) {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 1024
	}
	seed := deterministicSeed(req.Prompt, req.AspectRatio, width, height, len(req.References))

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.SetColor(colorFromSeed(seed, 0))
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	if err := dc.Fill(); err != nil {
		return Image{}, fmt.Errorf("genai: paint synthetic image: %w", err)
	}

	stripe := max(32, height/12)
	dc.SetColor(colorFromSeed(seed, 1))
	for y := 0; y < height; y += stripe * 2 {
		dc.DrawRectangle(0, float64(y), float64(width), float64(min(stripe, height-y)))
	}
	if err := dc.Fill(); err != nil {
		return Image{}, fmt.Errorf("genai: paint synthetic image: %w", err)
	}

	accent := colorFromSeed(seed, 2)
	dc.SetColor(color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: 160})
	dc.DrawCircle(float64(width)*0.7, float64(height)*0.35, float64(min(width, height))/4)
	if err := dc.Fill(); err != nil {
		return Image{}, fmt.Errorf("genai: paint synthetic image: %w", err)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return Image{}, fmt.Errorf("genai: encode synthetic image: %w", err)
	}

	c.logger.Debug().
		Str("seed", seed).
		Int("width", width).
		Int("height", height).
		Msg("genai: generated synthetic image")

	return Image{Data: buf.Bytes(), MIMEType: "image/png"}, nil
}

func colorFromSeed(seed string, shift int) color.RGBA {
	if seed == "" {
		seed = "000000"
	}
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.RGBA{R: parseHexByte(segment[0:2]), G: parseHexByte(segment[2:4]), B: parseHexByte(segment[4:6]), A: 255}
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func deterministicSeed(parts ...any) string {
	hasher := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(hasher, "%v|", part)
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
