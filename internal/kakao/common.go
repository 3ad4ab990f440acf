package kakao

// Link holds the alternative URLs opened by a thumbnail or list row.
// At least one must be set.
type Link struct {
	Web    string
	PC     string
	Mobile string
}

type linkWire struct {
	Web    string `json:"web,omitempty"`
	PC     string `json:"pc,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

func (l *Link) validate() error {
	if l.Web == "" && l.PC == "" && l.Mobile == "" {
		return newError(ErrInvalidLink, "one of web, pc or mobile is required")
	}
	return nil
}

func (l *Link) buildWire() *linkWire {
	if l == nil {
		return nil
	}
	return &linkWire{Web: l.Web, PC: l.PC, Mobile: l.Mobile}
}

func validateLink(l *Link) error {
	if l == nil {
		return nil
	}
	return within(l.validate(), "link")
}

// Thumbnail is the image shown on basic and commerce cards.
type Thumbnail struct {
	ImageURL   string
	Link       *Link
	FixedRatio bool
}

type thumbnailWire struct {
	ImageURL   string    `json:"imageUrl"`
	Link       *linkWire `json:"link,omitempty"`
	FixedRatio bool      `json:"fixedRatio,omitempty"`
}

func (t Thumbnail) validate() error {
	if err := required("imageUrl", t.ImageURL); err != nil {
		return err
	}
	return validateLink(t.Link)
}

func (t Thumbnail) buildWire() *thumbnailWire {
	return &thumbnailWire{ImageURL: t.ImageURL, Link: t.Link.buildWire(), FixedRatio: t.FixedRatio}
}

// Profile identifies the seller on a commerce card.
type Profile struct {
	Nickname string
	ImageURL string
}

type profileWire struct {
	Nickname string `json:"nickname"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (p *Profile) validate() error {
	return required("nickname", p.Nickname)
}

func (p *Profile) buildWire() *profileWire {
	if p == nil {
		return nil
	}
	return &profileWire{Nickname: p.Nickname, ImageURL: p.ImageURL}
}

// Button is a labelled action attached to a card. Any action kind is
// allowed, but one must be set.
type Button struct {
	Label string
	Interaction
}

type buttonWire struct {
	Label string `json:"label"`
	actionWire
}

func (b Button) validate() error {
	if err := required("label", b.Label); err != nil {
		return err
	}
	if b.Action == ActionNone {
		return newError(ErrInvalidAction, "button %q has no action", b.Label)
	}
	return b.Interaction.validate(buttonActions)
}

func (b Button) buildWire() buttonWire {
	return buttonWire{Label: b.Label, actionWire: b.Interaction.buildWire()}
}

// NewWebLinkButton opens url in the browser.
func NewWebLinkButton(label, url string) Button {
	return Button{Label: label, Interaction: Interaction{Action: ActionWebLink, WebLinkURL: url}}
}

// NewMessageButton sends text as if the user typed it.
func NewMessageButton(label, text string) Button {
	return Button{Label: label, Interaction: Interaction{Action: ActionMessage, MessageText: text}}
}

// NewPhoneButton dials number.
func NewPhoneButton(label, number string) Button {
	return Button{Label: label, Interaction: Interaction{Action: ActionPhone, PhoneNumber: number}}
}

// NewBlockButton calls the block blockID. text, if non-empty, is shown as
// the user's utterance; extra is forwarded to the skill as clientExtra.
func NewBlockButton(label, blockID, text string, extra map[string]any) Button {
	return Button{Label: label, Interaction: Interaction{
		Action: ActionBlock, BlockID: blockID, MessageText: text, Extra: extra,
	}}
}

// NewShareButton shares the card.
func NewShareButton(label string) Button {
	return Button{Label: label, Interaction: Interaction{Action: ActionShare}}
}

// NewOperatorButton hands the conversation over to a human operator.
func NewOperatorButton(label string) Button {
	return Button{Label: label, Interaction: Interaction{Action: ActionOperator}}
}

func validateButtons(buttons []Button, max int) error {
	if err := atMost("buttons", len(buttons), max); err != nil {
		return err
	}
	for i, b := range buttons {
		if err := b.validate(); err != nil {
			return within(err, index("buttons", i))
		}
	}
	return nil
}

func buildButtons(buttons []Button) []buttonWire {
	if len(buttons) == 0 {
		return nil
	}
	out := make([]buttonWire, len(buttons))
	for i, b := range buttons {
		out[i] = b.buildWire()
	}
	return out
}

func removeAt[T any](s []T, i int) ([]T, error) {
	if i < 0 || i >= len(s) {
		return s, newError(ErrContractViolation, "index %d out of range [0,%d)", i, len(s))
	}
	return append(s[:i:i], s[i+1:]...), nil
}

// ListHeader is the title row of a list card.
type ListHeader struct {
	Title string
}

type listHeaderWire struct {
	Title string `json:"title"`
}

// ListItem is a row of a list card. Selecting it may send a message or call
// a block; the action is optional.
type ListItem struct {
	Title       string
	Description string
	ImageURL    string
	Link        *Link
	Interaction
}

type listItemWire struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Link        *linkWire `json:"link,omitempty"`
	actionWire
}

func (li ListItem) validate() error {
	if err := required("title", li.Title); err != nil {
		return err
	}
	if err := validateLink(li.Link); err != nil {
		return err
	}
	return li.Interaction.validate(listItemActions)
}

func (li ListItem) buildWire() listItemWire {
	return listItemWire{
		Title:       li.Title,
		Description: li.Description,
		ImageURL:    li.ImageURL,
		Link:        li.Link.buildWire(),
		actionWire:  li.Interaction.buildWire(),
	}
}
