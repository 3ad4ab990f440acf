package kakao

// Item card alignment and layout values.
const (
	AlignLeft  = "left"
	AlignRight = "right"

	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
)

// ItemThumbnail is the top image of an item card.
type ItemThumbnail struct {
	ImageURL string
	Width    int
	Height   int
	Link     *Link
}

type itemThumbnailWire struct {
	ImageURL string    `json:"imageUrl"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
	Link     *linkWire `json:"link,omitempty"`
}

func (t *ItemThumbnail) validate() error {
	if err := required("imageUrl", t.ImageURL); err != nil {
		return err
	}
	if t.Width < 0 || t.Height < 0 {
		return newError(ErrContractViolation, "width and height must not be negative")
	}
	return validateLink(t.Link)
}

// ItemProfile is the small header with an icon. It cannot be combined with
// a head title.
type ItemProfile struct {
	Title    string
	ImageURL string
	Width    int
	Height   int
}

type itemProfileWire struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ImageTitle is a title block with an optional image on its right.
type ImageTitle struct {
	Title       string
	Description string
	ImageURL    string
}

type imageTitleWire struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Item is one "title: description" row of an item card.
type Item struct {
	Title       string
	Description string
}

type itemWire struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (it Item) validate() error {
	if err := required("title", it.Title); err != nil {
		return err
	}
	return required("description", it.Description)
}

// ItemListSummary is the emphasized total row under the item list.
type ItemListSummary struct {
	Title       string
	Description string
}

type headWire struct {
	Title string `json:"title"`
}

// ItemCard lists label/value rows, like a receipt.
type ItemCard struct {
	Thumbnail         *ItemThumbnail
	Head              string
	Profile           *ItemProfile
	ImageTitle        *ImageTitle
	ItemList          []Item
	ItemListAlignment string
	ItemListSummary   *ItemListSummary
	Title             string
	Description       string
	ButtonLayout      string
	Buttons           []Button
}

type itemCardWire struct {
	Thumbnail         *itemThumbnailWire `json:"thumbnail,omitempty"`
	Head              *headWire          `json:"head,omitempty"`
	Profile           *itemProfileWire   `json:"profile,omitempty"`
	ImageTitle        *imageTitleWire    `json:"imageTitle,omitempty"`
	ItemList          []itemWire         `json:"itemList"`
	ItemListAlignment string             `json:"itemListAlignment,omitempty"`
	ItemListSummary   *itemWire          `json:"itemListSummary,omitempty"`
	Title             string             `json:"title,omitempty"`
	Description       string             `json:"description,omitempty"`
	ButtonLayout      string             `json:"buttonLayout,omitempty"`
	Buttons           []buttonWire       `json:"buttons,omitempty"`
}

func NewItemCard(items ...Item) *ItemCard {
	return &ItemCard{ItemList: items}
}

func (c *ItemCard) Kind() Kind { return KindItemCard }

// AddItem appends a row to the item list.
func (c *ItemCard) AddItem(title, description string) *ItemCard {
	c.ItemList = append(c.ItemList, Item{Title: title, Description: description})
	return c
}

func (c *ItemCard) RemoveItem(i int) (err error) {
	c.ItemList, err = removeAt(c.ItemList, i)
	return err
}

func (c *ItemCard) AddButton(b Button) *ItemCard {
	c.Buttons = append(c.Buttons, b)
	return c
}

func (c *ItemCard) RemoveButton(i int) (err error) {
	c.Buttons, err = removeAt(c.Buttons, i)
	return err
}

func (c *ItemCard) Validate() error {
	if c.Thumbnail != nil {
		if err := c.Thumbnail.validate(); err != nil {
			return within(err, "thumbnail")
		}
	}
	if c.Head != "" && c.Profile != nil {
		return newError(ErrContractViolation, "itemCard cannot have both head and profile")
	}
	if c.Profile != nil {
		if err := required("title", c.Profile.Title); err != nil {
			return within(err, "profile")
		}
	}
	if c.ImageTitle != nil {
		if err := required("title", c.ImageTitle.Title); err != nil {
			return within(err, "imageTitle")
		}
	}
	if len(c.ItemList) == 0 {
		return newError(ErrContractViolation, "itemCard needs at least one item")
	}
	if err := atMost("itemList", len(c.ItemList), MaxItemListEntries); err != nil {
		return err
	}
	for i, it := range c.ItemList {
		if err := it.validate(); err != nil {
			return within(err, index("itemList", i))
		}
	}
	if err := oneOf("itemListAlignment", c.ItemListAlignment, AlignLeft, AlignRight); err != nil {
		return err
	}
	if c.ItemListSummary != nil {
		if err := (Item(*c.ItemListSummary)).validate(); err != nil {
			return within(err, "itemListSummary")
		}
	}
	if err := oneOf("buttonLayout", c.ButtonLayout, LayoutVertical, LayoutHorizontal); err != nil {
		return err
	}
	return validateButtons(c.Buttons, MaxCardButtons)
}

func (c *ItemCard) Render() (any, error) { return render(c) }

func (c *ItemCard) buildWire() any {
	w := &itemCardWire{
		ItemList:          make([]itemWire, len(c.ItemList)),
		ItemListAlignment: c.ItemListAlignment,
		Title:             c.Title,
		Description:       c.Description,
		ButtonLayout:      c.ButtonLayout,
		Buttons:           buildButtons(c.Buttons),
	}
	for i, it := range c.ItemList {
		w.ItemList[i] = itemWire(it)
	}
	if t := c.Thumbnail; t != nil {
		w.Thumbnail = &itemThumbnailWire{ImageURL: t.ImageURL, Width: t.Width, Height: t.Height, Link: t.Link.buildWire()}
	}
	if c.Head != "" {
		w.Head = &headWire{Title: c.Head}
	}
	if p := c.Profile; p != nil {
		w.Profile = &itemProfileWire{Title: p.Title, ImageURL: p.ImageURL, Width: p.Width, Height: p.Height}
	}
	if it := c.ImageTitle; it != nil {
		w.ImageTitle = &imageTitleWire{Title: it.Title, Description: it.Description, ImageURL: it.ImageURL}
	}
	if s := c.ItemListSummary; s != nil {
		w.ItemListSummary = &itemWire{Title: s.Title, Description: s.Description}
	}
	return w
}
