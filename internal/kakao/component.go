package kakao

// Kind identifies a renderable element. Its tag is the wire key that wraps
// the element inside template.outputs and the carousel "type" value.
type Kind int

const (
	KindSimpleText Kind = iota + 1
	KindSimpleImage
	KindTextCard
	KindBasicCard
	KindCommerceCard
	KindListCard
	KindItemCard
	KindCarousel
)

var kindTags = [...]string{
	KindSimpleText:   "simpleText",
	KindSimpleImage:  "simpleImage",
	KindTextCard:     "textCard",
	KindBasicCard:    "basicCard",
	KindCommerceCard: "commerceCard",
	KindListCard:     "listCard",
	KindItemCard:     "itemCard",
	KindCarousel:     "carousel",
}

// Tag returns the wire name of k.
func (k Kind) Tag() string {
	if k <= 0 || int(k) >= len(kindTags) {
		return ""
	}
	return kindTags[k]
}

func (k Kind) String() string { return k.Tag() }

// carouselKinds are the element kinds a Carousel may hold.
var carouselKinds = []Kind{KindTextCard, KindBasicCard, KindCommerceCard, KindListCard, KindItemCard}

// Component is an element that can be placed in a Response.
//
// The set of implementations is closed: SimpleText, SimpleImage, TextCard,
// BasicCard, CommerceCard, ListCard, ItemCard and Carousel.
type Component interface {
	Kind() Kind
	// Validate reports the first contract violation in the element or any
	// of its children.
	Validate() error
	// Render validates and returns the element's wire value. Nothing is
	// returned when validation fails.
	Render() (any, error)

	buildWire() any
}

func render(c Component) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.buildWire(), nil
}

// Output is one entry of template.outputs: exactly one field is set.
type Output struct {
	SimpleText   *simpleTextWire   `json:"simpleText,omitempty"`
	SimpleImage  *simpleImageWire  `json:"simpleImage,omitempty"`
	TextCard     *textCardWire     `json:"textCard,omitempty"`
	BasicCard    *basicCardWire    `json:"basicCard,omitempty"`
	CommerceCard *commerceCardWire `json:"commerceCard,omitempty"`
	ListCard     *listCardWire     `json:"listCard,omitempty"`
	ItemCard     *itemCardWire     `json:"itemCard,omitempty"`
	Carousel     *carouselWire     `json:"carousel,omitempty"`
}

func newOutput(wire any) Output {
	switch w := wire.(type) {
	case *simpleTextWire:
		return Output{SimpleText: w}
	case *simpleImageWire:
		return Output{SimpleImage: w}
	case *textCardWire:
		return Output{TextCard: w}
	case *basicCardWire:
		return Output{BasicCard: w}
	case *commerceCardWire:
		return Output{CommerceCard: w}
	case *listCardWire:
		return Output{ListCard: w}
	case *itemCardWire:
		return Output{ItemCard: w}
	case *carouselWire:
		return Output{Carousel: w}
	}
	return Output{}
}
