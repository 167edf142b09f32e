package compositor

import (
	"errors"
	"testing"

	"adstudio/internal/domain"
)

func sampleAd(backgrounds ...domain.AspectRatio) *domain.ComposableAd {
	req := domain.CompositionRequest{
		AdName:   "Summer Sale",
		Header1:  "Big Sale",
		Cta:      "Shop Now",
		AdSizes:  backgrounds,
		CTAStyle: domain.CTAStyle{TextColor: "#ffffff", BackgroundColor: "#000000", Padding: 12, CornerRadius: 8},
	}
	var bgs []domain.Background
	for _, ratio := range backgrounds {
		bgs = append(bgs, domain.Background{AspectRatio: ratio, Image: solidPNG(8, 8)})
	}
	return domain.NewComposableAd(req, bgs)
}

func TestPreviewCardsHaveIndependentState(t *testing.T) {
	cards := Preview(sampleAd("1:1", "9:16"))
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
	if err := cards[0].Drag(domain.Header1, domain.Offset{X: 40, Y: -12}); err != nil {
		t.Fatalf("Drag returned error: %v", err)
	}
	if err := cards[0].ScaleUp(domain.Header1); err != nil {
		t.Fatalf("ScaleUp returned error: %v", err)
	}

	moved := cards[0].Element(domain.Header1)
	if moved.Offset != (domain.Offset{X: 40, Y: -12}) || moved.Scale != 1.05 {
		t.Fatalf("card 0 header1 = %+v", moved)
	}
	other := cards[1].Element(domain.Header1)
	if other.Offset != (domain.Offset{}) || other.Scale != domain.DefaultScale {
		t.Fatalf("card 1 header1 changed: %+v", other)
	}
	if cta := cards[0].Element(domain.Cta); cta.Offset != (domain.Offset{}) {
		t.Fatalf("dragging header1 moved cta: %+v", cta)
	}
}

func TestCardRejectsHiddenElements(t *testing.T) {
	card := Preview(sampleAd("1:1"))[0]
	err := card.Drag(domain.Description, domain.Offset{X: 1})
	if !errors.Is(err, domain.ErrElementHidden) {
		t.Fatalf("Drag error = %v, want ErrElementHidden", err)
	}
	if err := card.ScaleUp(domain.Logo); !errors.Is(err, domain.ErrElementHidden) {
		t.Fatalf("ScaleUp error = %v, want ErrElementHidden", err)
	}
	if err := card.ScaleDown("banner"); !errors.Is(err, domain.ErrUnknownElement) {
		t.Fatalf("ScaleDown error = %v, want ErrUnknownElement", err)
	}
}

func TestCardScaleDownStopsAtFloor(t *testing.T) {
	card := Preview(sampleAd("1:1"))[0]
	for range 40 {
		if err := card.ScaleDown(domain.Cta); err != nil {
			t.Fatalf("ScaleDown returned error: %v", err)
		}
	}
	if got := card.Element(domain.Cta).Scale; got != domain.MinScale {
		t.Fatalf("Scale = %v, want %v", got, domain.MinScale)
	}
}

func TestSaveFromCardKeepsEveryBackground(t *testing.T) {
	ad := sampleAd("1:1", "16:9")
	cards := Preview(ad)
	if err := cards[1].Drag(domain.Cta, domain.Offset{X: 5, Y: 6}); err != nil {
		t.Fatalf("Drag returned error: %v", err)
	}

	saved := SaveFromCard(ad, cards[1])
	if len(saved.Backgrounds) != 2 {
		t.Fatalf("len(Backgrounds) = %d, want 2", len(saved.Backgrounds))
	}
	if got := saved.Element(domain.Cta).Offset; got != (domain.Offset{X: 5, Y: 6}) {
		t.Fatalf("saved cta offset = %+v", got)
	}
	if got := ad.Element(domain.Cta).Offset; got != (domain.Offset{}) {
		t.Fatalf("source ad mutated: %+v", got)
	}
}

func TestDeckResetsOnIdentityChange(t *testing.T) {
	var deck Deck
	ad := sampleAd("1:1")
	ad.ID = "ad-1"

	cards := deck.Load(ad)
	if err := cards[0].Drag(domain.Header1, domain.Offset{X: 9}); err != nil {
		t.Fatalf("Drag returned error: %v", err)
	}

	same := *ad
	if got := deck.Load(&same)[0].Element(domain.Header1).Offset.X; got != 9 {
		t.Fatalf("reloading the same ad reset state: X = %v", got)
	}

	next := sampleAd("1:1")
	next.ID = "ad-2"
	if got := deck.Load(next)[0].Element(domain.Header1).Offset.X; got != 0 {
		t.Fatalf("loading another ad kept state: X = %v", got)
	}

	saved, err := deck.Save(0)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.ID != "ad-2" {
		t.Fatalf("saved ID = %q, want ad-2", saved.ID)
	}
	if _, err := deck.Save(3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Save(3) error = %v, want ErrNotFound", err)
	}
}
