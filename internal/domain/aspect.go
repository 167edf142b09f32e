package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CanvasLongSide is the pixel length of the longer canvas edge for ratio
// tags that carry no explicit pixel size.
const CanvasLongSide = 1080

// MaxCanvasSide bounds either edge of a canvas.
const MaxCanvasSide = 4096

// AspectRatio is a target ad size tag, either "W:H" or a pixel size "WxH".
type AspectRatio string

// AdSize is a named entry of the size picker.
type AdSize struct {
	Name  string      `json:"name"`
	Ratio AspectRatio `json:"ratio"`
}

var StandardAdSizes = []AdSize{
	{Name: "Square (1:1)", Ratio: "1:1"},
	{Name: "Portrait (4:5)", Ratio: "4:5"},
	{Name: "Story (9:16)", Ratio: "9:16"},
	{Name: "Landscape (16:9)", Ratio: "16:9"},
	{Name: "Link Preview (1.91:1)", Ratio: "1.91:1"},
}

// modelRatios are the ratios the image model accepts natively.
var modelRatios = []string{"1:1", "2:3", "3:2", "3:4", "4:3", "4:5", "5:4", "9:16", "16:9", "21:9"}

// ParseAspectRatio validates and normalizes a ratio tag.
func ParseAspectRatio(s string) (AspectRatio, error) {
	a := AspectRatio(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Check(); err != nil {
		return "", err
	}
	return a, nil
}

func (a AspectRatio) String() string {
	return string(a)
}

func (a AspectRatio) parts() (float64, float64, error) {
	s := strings.ToLower(strings.TrimSpace(string(a)))
	sep := ":"
	if strings.Contains(s, "x") {
		sep = "x"
	}
	left, right, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", string(a))
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(left), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if errW != nil || errH != nil || math.IsNaN(w) || math.IsNaN(h) || w <= 0 || h <= 0 || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", string(a))
	}
	return w, h, nil
}

// Valid reports whether the tag parses into a usable canvas.
func (a AspectRatio) Valid() bool {
	return a.Check() == nil
}

// Check rejects tags that do not parse or whose canvas would have an edge
// shorter than 1 px or longer than MaxCanvasSide.
func (a AspectRatio) Check() error {
	w, h, err := a.size()
	if err != nil {
		return err
	}
	if w < 1 || h < 1 || w > MaxCanvasSide || h > MaxCanvasSide {
		return fmt.Errorf("aspect ratio %q gives a %dx%d canvas, each side must be between 1 and %d px", string(a), w, h, MaxCanvasSide)
	}
	return nil
}

// Dimensions returns the canvas size in pixels. Pixel tags are used as is;
// ratio tags are scaled so the longer side is CanvasLongSide. Each edge is
// clamped to [1, MaxCanvasSide].
func (a AspectRatio) Dimensions() (int, int) {
	w, h, err := a.size()
	if err != nil {
		return CanvasLongSide, CanvasLongSide
	}
	return clampSide(w), clampSide(h)
}

func (a AspectRatio) size() (int, int, error) {
	w, h, err := a.parts()
	if err != nil {
		return 0, 0, err
	}
	if strings.Contains(strings.ToLower(string(a)), "x") {
		return roundSide(w), roundSide(h), nil
	}
	if w >= h {
		return CanvasLongSide, roundSide(CanvasLongSide * h / w), nil
	}
	return roundSide(CanvasLongSide * w / h), CanvasLongSide, nil
}

func roundSide(v float64) int {
	if v > MaxCanvasSide {
		return MaxCanvasSide + 1
	}
	return int(math.Round(v))
}

func clampSide(v int) int {
	return min(max(v, 1), MaxCanvasSide)
}

// ModelRatio returns the closest ratio the image model supports natively.
func (a AspectRatio) ModelRatio() string {
	w, h, err := a.parts()
	if err != nil {
		return "1:1"
	}
	target := math.Log(w / h)
	best, bestDiff := "1:1", math.Inf(1)
	for _, r := range modelRatios {
		mw, mh, _ := AspectRatio(r).parts()
		if d := math.Abs(math.Log(mw/mh) - target); d < bestDiff {
			best, bestDiff = r, d
		}
	}
	return best
}
