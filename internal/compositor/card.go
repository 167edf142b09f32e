package compositor

import (
	"fmt"
	"sync"

	"adstudio/internal/domain"
)

// Card is the editable surface of one background. Cards of the same ad never
// share element state.
type Card struct {
	mu         sync.RWMutex
	index      int
	background domain.Background
	cta        domain.CTAStyle
	elements   map[domain.ElementKind]domain.Element
}

// Preview builds one card per background, each starting from the ad's saved
// element layout.
func Preview(ad *domain.ComposableAd) []*Card {
	cards := make([]*Card, 0, len(ad.Backgrounds))
	for i, bg := range ad.Backgrounds {
		c := &Card{
			index:      i,
			background: bg,
			cta:        ad.Request.CTAStyle,
			elements:   make(map[domain.ElementKind]domain.Element, len(domain.ElementKinds)),
		}
		for _, kind := range domain.ElementKinds {
			c.elements[kind] = ad.Element(kind)
		}
		cards = append(cards, c)
	}
	return cards
}

// Index is the zero-based position of the card within its ad.
func (c *Card) Index() int {
	return c.index
}

// Background returns the card's background layer.
func (c *Card) Background() domain.Background {
	return c.background
}

// CTAStyle returns the button styling applied to the call to action.
func (c *Card) CTAStyle() domain.CTAStyle {
	return c.cta
}

// Element returns the current state of one element.
func (c *Card) Element(kind domain.ElementKind) domain.Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elements[kind]
}

// Elements returns every element in draw order.
func (c *Card) Elements() []domain.Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Element, 0, len(domain.ElementKinds))
	for _, kind := range domain.ElementKinds {
		out = append(out, c.elements[kind])
	}
	return out
}

func (c *Card) elementMap() map[domain.ElementKind]domain.Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[domain.ElementKind]domain.Element, len(c.elements))
	for k, v := range c.elements {
		out[k] = v
	}
	return out
}

// Drag moves an element to the offset reported at the end of a gesture.
func (c *Card) Drag(kind domain.ElementKind, to domain.Offset) error {
	return c.update(kind, func(el *domain.Element) { el.MoveTo(to) })
}

// ScaleUp grows an element by one step.
func (c *Card) ScaleUp(kind domain.ElementKind) error {
	return c.update(kind, func(el *domain.Element) { el.ScaleUp() })
}

// ScaleDown shrinks an element by one step.
func (c *Card) ScaleDown(kind domain.ElementKind) error {
	return c.update(kind, func(el *domain.Element) { el.ScaleDown() })
}

func (c *Card) update(kind domain.ElementKind, fn func(*domain.Element)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.elements[kind]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownElement, kind)
	}
	if !el.HasContent() {
		return fmt.Errorf("%w: %s", domain.ErrElementHidden, kind)
	}
	fn(&el)
	c.elements[kind] = el
	return nil
}

// SaveFromCard returns a copy of the ad carrying the card's element layout
// and every background of the ad.
func SaveFromCard(ad *domain.ComposableAd, card *Card) *domain.ComposableAd {
	out := *ad
	out.Request = ad.Request.Clone()
	out.Backgrounds = append([]domain.Background(nil), ad.Backgrounds...)
	out.Elements = card.Elements()
	return &out
}

// Deck holds the cards of the ad currently being viewed. Loading an ad with
// a different identity discards every card's edits.
type Deck struct {
	mu    sync.Mutex
	ad    *domain.ComposableAd
	cards []*Card
}

// Load shows an ad. Reloading the same ad keeps the current card state.
func (d *Deck) Load(ad *domain.ComposableAd) []*Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ad != nil && sameAd(d.ad, ad) {
		return d.cards
	}
	d.ad = ad
	d.cards = Preview(ad)
	return d.cards
}

// Card returns a card of the loaded ad by index.
func (d *Deck) Card(index int) (*Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.cards) {
		return nil, false
	}
	return d.cards[index], true
}

// Save returns the loaded ad with the layout of the card at index.
func (d *Deck) Save(index int) (*domain.ComposableAd, error) {
	d.mu.Lock()
	ad, cards := d.ad, d.cards
	d.mu.Unlock()
	if ad == nil || index < 0 || index >= len(cards) {
		return nil, fmt.Errorf("card %d: %w", index, domain.ErrNotFound)
	}
	return SaveFromCard(ad, cards[index]), nil
}

func sameAd(a, b *domain.ComposableAd) bool {
	if a.IsPersisted() || b.IsPersisted() {
		return a.ID == b.ID
	}
	return a == b
}
