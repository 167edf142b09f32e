package compositor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/singleflight"

	"adstudio/internal/domain"
	"adstudio/internal/infra"
)

// FontRegistry resolves font families to faces. Families found under the
// font directory as "<Family>-<Weight>.ttf" or "<Family>.ttf" win; everything
// else renders with the bundled Go fonts.
type FontRegistry struct {
	dir    string
	logger infra.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	sources map[string]*text.FontSource
}

func NewFontRegistry(dir string, logger *infra.Logger) *FontRegistry {
	return &FontRegistry{
		dir:     strings.TrimSpace(dir),
		logger:  infra.LoggerOrNop(logger),
		sources: map[string]*text.FontSource{},
	}
}

// Face returns a face for the family at the given pixel size.
func (r *FontRegistry) Face(family string, weight Weight, size float64) (text.Face, error) {
	if size <= 0 {
		size = domain.FallbackTypography[domain.Description].FontSize
	}
	src, err := r.source(family, weight)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

func (r *FontRegistry) source(family string, weight Weight) (*text.FontSource, error) {
	key := strings.ToLower(strings.TrimSpace(family)) + "/" + weight.String()

	r.mu.RLock()
	src, ok := r.sources[key]
	r.mu.RUnlock()
	if ok {
		return src, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		src, err := r.load(family, weight)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.sources[key] = src
		r.mu.Unlock()
		return src, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*text.FontSource), nil
}

func (r *FontRegistry) load(family string, weight Weight) (*text.FontSource, error) {
	if path, ok := r.lookup(family, weight); ok {
		src, err := text.NewFontSourceFromFile(path)
		if err == nil {
			r.logger.Debug().Str("family", family).Str("path", path).Msg("compositor: loaded font")
			return src, nil
		}
		r.logger.Warn().Err(err).Str("family", family).Str("path", path).Msg("compositor: font file unusable, using bundled font")
	}
	src, err := text.NewFontSource(bundledFont(weight))
	if err != nil {
		return nil, fmt.Errorf("compositor: load bundled font: %w", err)
	}
	return src, nil
}

func (r *FontRegistry) lookup(family string, weight Weight) (string, bool) {
	family = strings.TrimSpace(family)
	if r.dir == "" || family == "" {
		return "", false
	}
	names := []string{family, strings.ReplaceAll(family, " ", "")}
	var candidates []string
	for _, name := range names {
		if weight != WeightRegular {
			candidates = append(candidates, name+"-"+weight.String()+".ttf")
		}
		candidates = append(candidates, name+".ttf")
	}
	for _, c := range candidates {
		path := filepath.Join(r.dir, c)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn().Err(err).Str("path", path).Msg("compositor: stat font")
		}
	}
	return "", false
}

func bundledFont(weight Weight) []byte {
	switch weight {
	case WeightBold:
		return gobold.TTF
	case WeightMedium:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}

func (w Weight) String() string {
	switch w {
	case WeightBold:
		return "Bold"
	case WeightMedium:
		return "Medium"
	default:
		return "Regular"
	}
}

// Wrap breaks s into lines no wider than maxWidth, splitting on whitespace.
// A single word wider than maxWidth keeps its own line.
func (r *FontRegistry) Wrap(s string, typo domain.Typography, weight Weight, maxWidth float64) TextBlock {
	face, err := r.Face(typo.FontFamily, weight, typo.FontSize)
	if err != nil {
		r.logger.Error().Err(err).Msg("compositor: no face for measurement")
		return TextBlock{}
	}
	return wrapWith(s, maxWidth, lineHeight(face), func(line string) float64 {
		w, _ := text.Measure(line, face)
		return w
	})
}

func lineHeight(face text.Face) float64 {
	m := face.Metrics()
	if h := m.Ascent + m.Descent + m.LineGap; h > 0 {
		return h
	}
	return face.Size() * defaultLineRate
}

func wrapWith(s string, maxWidth, lh float64, measure func(string) float64) TextBlock {
	block := TextBlock{LineHeight: lh}
	for _, para := range strings.Split(strings.TrimSpace(s), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			block.Lines = append(block.Lines, line)
			block.Widths = append(block.Widths, measure(line))
			line = word
		}
		block.Lines = append(block.Lines, line)
		block.Widths = append(block.Widths, measure(line))
	}
	return block
}

var _ TextMeasurer = (*FontRegistry)(nil)
