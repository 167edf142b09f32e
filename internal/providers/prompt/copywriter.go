package prompt

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"adstudio/internal/domain"
)

// Copywriter turns a free-text brief into ad copy.
type Copywriter interface {
	WriteCopy(ctx context.Context, brief string) (domain.AdCopy, error)
	Name() string
}

// StaticCopywriter derives copy from the brief itself. It never calls out
// and is used when no text model is configured.
type StaticCopywriter struct{}

func NewStaticCopywriter() *StaticCopywriter {
	return &StaticCopywriter{}
}

func (s *StaticCopywriter) Name() string { return staticProviderName }

func (s *StaticCopywriter) WriteCopy(ctx context.Context, brief string) (domain.AdCopy, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdCopy{}, err
	}
	words := strings.Fields(brief)
	title := cases.Title(language.English)
	out := domain.AdCopy{
		Header1:     title.String(coalesce(joinFirst(words, 5), "Something New")),
		Description: coalesce(joinFirst(words, 20), "Discover what makes it special."),
		Cta:         "Shop Now",
	}
	if len(words) > 5 {
		out.Header2 = title.String(joinFirst(words[5:], 8))
	}
	return out, nil
}

func joinFirst(words []string, n int) string {
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

var _ Copywriter = (*StaticCopywriter)(nil)
