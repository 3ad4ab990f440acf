package kakao

// Per-element limits.
const (
	MaxCardButtons         = 3
	MaxCarouselCardButtons = 2
	MaxListCardButtons     = 2
	MaxListItems           = 5
	MaxCarouselListItems   = 4
	MaxItemListEntries     = 10
)

// CurrencyWon is the only currency commerce cards accept.
const CurrencyWon = "won"

// TextCard is a card with text and buttons. At least one of Title and
// Description must be set.
type TextCard struct {
	Title       string
	Description string
	Buttons     []Button
}

type textCardWire struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Buttons     []buttonWire `json:"buttons,omitempty"`
}

func NewTextCard(title, description string, buttons ...Button) *TextCard {
	return &TextCard{Title: title, Description: description, Buttons: buttons}
}

func (c *TextCard) Kind() Kind { return KindTextCard }

func (c *TextCard) AddButton(b Button) *TextCard {
	c.Buttons = append(c.Buttons, b)
	return c
}

func (c *TextCard) RemoveButton(i int) (err error) {
	c.Buttons, err = removeAt(c.Buttons, i)
	return err
}

func (c *TextCard) Validate() error {
	if c.Title == "" && c.Description == "" {
		return newError(ErrContractViolation, "textCard needs a title or a description")
	}
	return validateButtons(c.Buttons, MaxCardButtons)
}

func (c *TextCard) Render() (any, error) { return render(c) }

func (c *TextCard) buildWire() any {
	return &textCardWire{Title: c.Title, Description: c.Description, Buttons: buildButtons(c.Buttons)}
}

// BasicCard is a card with a thumbnail.
type BasicCard struct {
	Thumbnail   *Thumbnail
	Title       string
	Description string
	Buttons     []Button
	Forwardable bool
}

type basicCardWire struct {
	Thumbnail   *thumbnailWire `json:"thumbnail"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Buttons     []buttonWire   `json:"buttons,omitempty"`
	Forwardable bool           `json:"forwardable,omitempty"`
}

func NewBasicCard(thumbnail Thumbnail, title, description string, buttons ...Button) *BasicCard {
	return &BasicCard{Thumbnail: &thumbnail, Title: title, Description: description, Buttons: buttons}
}

func (c *BasicCard) Kind() Kind { return KindBasicCard }

func (c *BasicCard) AddButton(b Button) *BasicCard {
	c.Buttons = append(c.Buttons, b)
	return c
}

func (c *BasicCard) RemoveButton(i int) (err error) {
	c.Buttons, err = removeAt(c.Buttons, i)
	return err
}

func (c *BasicCard) Validate() error {
	if c.Thumbnail == nil {
		return newError(ErrInvalidType, "thumbnail is required")
	}
	if err := c.Thumbnail.validate(); err != nil {
		return within(err, "thumbnail")
	}
	return validateButtons(c.Buttons, MaxCardButtons)
}

func (c *BasicCard) Render() (any, error) { return render(c) }

func (c *BasicCard) buildWire() any {
	return &basicCardWire{
		Thumbnail:   c.Thumbnail.buildWire(),
		Title:       c.Title,
		Description: c.Description,
		Buttons:     buildButtons(c.Buttons),
		Forwardable: c.Forwardable,
	}
}

// CommerceCard advertises a product.
//
// When DiscountPrice is set the platform displays it instead of Price.
// DiscountRate is only shown together with DiscountPrice, and takes
// precedence over Discount when both are given. Zero means unset for the
// three discount fields.
type CommerceCard struct {
	Price         int
	Thumbnails    []Thumbnail
	Title         string
	Description   string
	Currency      string
	Discount      int
	DiscountRate  int
	DiscountPrice int
	Profile       *Profile
	Buttons       []Button
}

type commerceCardWire struct {
	Price         int             `json:"price"`
	Thumbnails    []thumbnailWire `json:"thumbnails"`
	Title         string          `json:"title,omitempty"`
	Description   string          `json:"description,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	Discount      int             `json:"discount,omitempty"`
	DiscountRate  int             `json:"discountRate,omitempty"`
	DiscountPrice int             `json:"discountPrice,omitempty"`
	Profile       *profileWire    `json:"profile,omitempty"`
	Buttons       []buttonWire    `json:"buttons,omitempty"`
}

func NewCommerceCard(price int, thumbnail Thumbnail, buttons ...Button) *CommerceCard {
	return &CommerceCard{Price: price, Thumbnails: []Thumbnail{thumbnail}, Buttons: buttons}
}

func (c *CommerceCard) Kind() Kind { return KindCommerceCard }

func (c *CommerceCard) AddButton(b Button) *CommerceCard {
	c.Buttons = append(c.Buttons, b)
	return c
}

func (c *CommerceCard) RemoveButton(i int) (err error) {
	c.Buttons, err = removeAt(c.Buttons, i)
	return err
}

func (c *CommerceCard) Validate() error {
	if c.Price < 0 {
		return newError(ErrContractViolation, "price must not be negative, got %d", c.Price)
	}
	if len(c.Thumbnails) == 0 {
		return newError(ErrContractViolation, "commerceCard needs a thumbnail")
	}
	// The platform renders only one thumbnail.
	if err := atMost("thumbnails", len(c.Thumbnails), 1); err != nil {
		return err
	}
	if err := c.Thumbnails[0].validate(); err != nil {
		return within(err, "thumbnails[0]")
	}
	if err := oneOf("currency", c.Currency, CurrencyWon); err != nil {
		return err
	}
	if c.Discount < 0 || c.DiscountRate < 0 || c.DiscountPrice < 0 {
		return newError(ErrContractViolation, "discount fields must not be negative")
	}
	if c.DiscountRate > 100 {
		return newError(ErrContractViolation, "discountRate must be at most 100, got %d", c.DiscountRate)
	}
	if c.DiscountRate != 0 && c.DiscountPrice == 0 {
		return newError(ErrContractViolation, "discountRate requires discountPrice")
	}
	if c.Profile != nil {
		if err := c.Profile.validate(); err != nil {
			return within(err, "profile")
		}
	}
	return validateButtons(c.Buttons, MaxCardButtons)
}

func (c *CommerceCard) Render() (any, error) { return render(c) }

func (c *CommerceCard) buildWire() any {
	thumbs := make([]thumbnailWire, len(c.Thumbnails))
	for i, t := range c.Thumbnails {
		thumbs[i] = *t.buildWire()
	}
	return &commerceCardWire{
		Price:         c.Price,
		Thumbnails:    thumbs,
		Title:         c.Title,
		Description:   c.Description,
		Currency:      c.Currency,
		Discount:      c.Discount,
		DiscountRate:  c.DiscountRate,
		DiscountPrice: c.DiscountPrice,
		Profile:       c.Profile.buildWire(),
		Buttons:       buildButtons(c.Buttons),
	}
}

// ListCard shows a header and up to five selectable rows.
type ListCard struct {
	Header  ListHeader
	Items   []ListItem
	Buttons []Button
}

type listCardWire struct {
	Header  listHeaderWire `json:"header"`
	Items   []listItemWire `json:"items"`
	Buttons []buttonWire   `json:"buttons,omitempty"`
}

func NewListCard(header string, items ...ListItem) *ListCard {
	return &ListCard{Header: ListHeader{Title: header}, Items: items}
}

func (c *ListCard) Kind() Kind { return KindListCard }

func (c *ListCard) AddItem(item ListItem) *ListCard {
	c.Items = append(c.Items, item)
	return c
}

func (c *ListCard) RemoveItem(i int) (err error) {
	c.Items, err = removeAt(c.Items, i)
	return err
}

func (c *ListCard) AddButton(b Button) *ListCard {
	c.Buttons = append(c.Buttons, b)
	return c
}

func (c *ListCard) RemoveButton(i int) (err error) {
	c.Buttons, err = removeAt(c.Buttons, i)
	return err
}

func (c *ListCard) Validate() error {
	if err := required("title", c.Header.Title); err != nil {
		return within(err, "header")
	}
	if len(c.Items) == 0 {
		return newError(ErrContractViolation, "listCard needs at least one item")
	}
	if err := atMost("items", len(c.Items), MaxListItems); err != nil {
		return err
	}
	for i, item := range c.Items {
		if err := item.validate(); err != nil {
			return within(err, index("items", i))
		}
	}
	return validateButtons(c.Buttons, MaxListCardButtons)
}

func (c *ListCard) Render() (any, error) { return render(c) }

func (c *ListCard) buildWire() any {
	items := make([]listItemWire, len(c.Items))
	for i, item := range c.Items {
		items[i] = item.buildWire()
	}
	return &listCardWire{
		Header:  listHeaderWire{Title: c.Header.Title},
		Items:   items,
		Buttons: buildButtons(c.Buttons),
	}
}
