package kakao

import "slices"

// Carousel is a horizontally scrolled group of cards of one kind.
//
// The item kind is fixed by the first card ever added and stays fixed even
// if every card is later removed.
type Carousel struct {
	kind  Kind
	items []Component
}

type carouselWire struct {
	Type  string `json:"type"`
	Items []any  `json:"items"`
}

// NewCarousel returns a carousel holding items. It stops at the first item
// whose kind differs from the first one.
func NewCarousel(items ...Component) (*Carousel, error) {
	c := &Carousel{}
	for _, it := range items {
		if err := c.AddItem(it); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Carousel) Kind() Kind { return KindCarousel }

// ItemKind reports the kind of card the carousel holds, and false if no
// card was ever added.
func (c *Carousel) ItemKind() (Kind, bool) {
	return c.kind, c.kind != 0
}

func (c *Carousel) Len() int { return len(c.items) }

func (c *Carousel) IsEmpty() bool { return len(c.items) == 0 }

// Items returns a copy of the carousel's cards.
func (c *Carousel) Items() []Component { return slices.Clone(c.items) }

// AddItem appends item. A kind that differs from ItemKind is rejected with
// ErrInvalidType and the carousel is left unchanged.
func (c *Carousel) AddItem(item Component) error {
	if item == nil {
		return newError(ErrInvalidType, "carousel item is nil")
	}
	if c.kind == 0 {
		c.kind = item.Kind()
	} else if item.Kind() != c.kind {
		return newError(ErrInvalidType, "carousel holds %s, got %s", c.kind, item.Kind())
	}
	c.items = append(c.items, item)
	return nil
}

// RemoveItem drops the card at i. ItemKind is not reset.
func (c *Carousel) RemoveItem(i int) (err error) {
	c.items, err = removeAt(c.items, i)
	return err
}

func (c *Carousel) Validate() error {
	if len(c.items) == 0 {
		return newError(ErrContractViolation, "carousel is empty")
	}
	if !slices.Contains(carouselKinds, c.kind) {
		return newError(ErrInvalidType, "%s cannot be placed in a carousel", c.kind)
	}
	for i, it := range c.items {
		if err := it.Validate(); err != nil {
			return within(err, index("items", i))
		}
		if err := validateInCarousel(it); err != nil {
			return within(err, index("items", i))
		}
	}
	return nil
}

// validateInCarousel applies the tighter limits cards have inside a
// carousel.
func validateInCarousel(c Component) error {
	var buttons int
	switch v := c.(type) {
	case *TextCard:
		buttons = len(v.Buttons)
	case *BasicCard:
		buttons = len(v.Buttons)
	case *CommerceCard:
		buttons = len(v.Buttons)
	case *ItemCard:
		buttons = len(v.Buttons)
	case *ListCard:
		buttons = len(v.Buttons)
		if err := atMost("items", len(v.Items), MaxCarouselListItems); err != nil {
			return err
		}
	}
	return atMost("buttons", buttons, MaxCarouselCardButtons)
}

func (c *Carousel) Render() (any, error) { return render(c) }

func (c *Carousel) buildWire() any {
	w := &carouselWire{Type: c.kind.Tag(), Items: make([]any, len(c.items))}
	for i, it := range c.items {
		w.Items[i] = it.buildWire()
	}
	return w
}
