package kakao

import "slices"

// Interaction is the action payload shared by Button, QuickReply and
// ListItem. Empty strings are treated as absent.
type Interaction struct {
	Action      ActionKind
	WebLinkURL  string
	MessageText string
	PhoneNumber string
	BlockID     string
	Extra       map[string]any
}

var (
	buttonActions     = AllActions
	quickReplyActions = []ActionKind{ActionMessage, ActionBlock}
	listItemActions   = []ActionKind{ActionMessage, ActionBlock}
)

func (in Interaction) value(f Field) string {
	switch f {
	case FieldWebLinkURL:
		return in.WebLinkURL
	case FieldMessageText:
		return in.MessageText
	case FieldPhoneNumber:
		return in.PhoneNumber
	case FieldBlockID:
		return in.BlockID
	}
	return ""
}

// validate checks the action against the owner's allowed set and the
// action's required fields. A missing action is not an error here.
func (in Interaction) validate(allowed []ActionKind) error {
	if in.Action == ActionNone {
		return nil
	}
	if !in.Action.valid() {
		return newError(ErrInvalidAction, "unknown action kind %d", int(in.Action))
	}
	if !slices.Contains(allowed, in.Action) {
		return newError(ErrInvalidAction, "action %q is not allowed here", in.Action)
	}
	req, _ := in.Action.Fields()
	for _, f := range req {
		if in.value(f) == "" {
			return newError(ErrInvalidType, "%s is required for action %q", f.WireName(), in.Action)
		}
	}
	return nil
}

// actionWire is embedded into the wire form of every owner so its keys are
// flattened next to the owner's own keys.
type actionWire struct {
	Action      string         `json:"action,omitempty"`
	WebLinkURL  string         `json:"webLinkUrl,omitempty"`
	MessageText string         `json:"messageText,omitempty"`
	PhoneNumber string         `json:"phoneNumber,omitempty"`
	BlockID     string         `json:"blockId,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func (w *actionWire) set(f Field, v string) {
	switch f {
	case FieldWebLinkURL:
		w.WebLinkURL = v
	case FieldMessageText:
		w.MessageText = v
	case FieldPhoneNumber:
		w.PhoneNumber = v
	case FieldBlockID:
		w.BlockID = v
	}
}

// buildWire emits only the fields the action's table names; anything else
// set on the struct is dropped.
func (in Interaction) buildWire() actionWire {
	var w actionWire
	if !in.Action.valid() {
		return w
	}
	w.Action = in.Action.String()
	req, opt := in.Action.Fields()
	for _, f := range req {
		w.set(f, in.value(f))
	}
	for _, f := range opt {
		if v := in.value(f); v != "" {
			w.set(f, v)
		}
	}
	w.Extra = in.Extra
	return w
}
