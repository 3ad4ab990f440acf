package kakao

import (
	"strings"
)

// ActionKind is the verb a button, quick reply or list row performs when
// the user selects it. The zero value means "no action".
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionWebLink
	ActionMessage
	ActionPhone
	ActionBlock
	ActionShare
	ActionOperator
)

// Field names an action payload attribute.
type Field int

const (
	FieldWebLinkURL Field = iota
	FieldMessageText
	FieldPhoneNumber
	FieldBlockID
)

var fieldWireNames = [...]string{
	FieldWebLinkURL:  "webLinkUrl",
	FieldMessageText: "messageText",
	FieldPhoneNumber: "phoneNumber",
	FieldBlockID:     "blockId",
}

// WireName returns the JSON key the platform uses for f.
func (f Field) WireName() string {
	if f < 0 || int(f) >= len(fieldWireNames) {
		return ""
	}
	return fieldWireNames[f]
}

func (f Field) String() string { return f.WireName() }

// ParseField is the inverse of WireName.
func ParseField(name string) (Field, error) {
	for f, wire := range fieldWireNames {
		if wire == name {
			return Field(f), nil
		}
	}
	return 0, newError(ErrInvalidType, "unknown action field %q", name)
}

type actionSpec struct {
	wire     string
	required []Field
	optional []Field
}

// actionSpecs is the only place that says which payload fields an action
// kind needs.
var actionSpecs = [...]actionSpec{
	ActionNone:     {},
	ActionWebLink:  {wire: "webLink", required: []Field{FieldWebLinkURL}},
	ActionMessage:  {wire: "message", required: []Field{FieldMessageText}},
	ActionPhone:    {wire: "phone", required: []Field{FieldPhoneNumber}},
	ActionBlock:    {wire: "block", required: []Field{FieldBlockID}, optional: []Field{FieldMessageText}},
	ActionShare:    {wire: "share"},
	ActionOperator: {wire: "operator"},
}

// AllActions lists every action kind the platform understands.
var AllActions = []ActionKind{
	ActionWebLink, ActionMessage, ActionPhone, ActionBlock, ActionShare, ActionOperator,
}

func (a ActionKind) valid() bool {
	return a > ActionNone && int(a) < len(actionSpecs)
}

// String returns the wire value, or "" for ActionNone and unknown kinds.
func (a ActionKind) String() string {
	if !a.valid() {
		return ""
	}
	return actionSpecs[a].wire
}

// Fields returns the payload fields a requires and the ones it accepts
// optionally. The returned slices must not be modified.
func (a ActionKind) Fields() (required, optional []Field) {
	if !a.valid() {
		return nil, nil
	}
	s := actionSpecs[a]
	return s.required, s.optional
}

// ParseAction maps a wire value (case-insensitive) to its ActionKind.
func ParseAction(s string) (ActionKind, error) {
	for _, a := range AllActions {
		if strings.EqualFold(a.String(), s) {
			return a, nil
		}
	}
	return ActionNone, newError(ErrInvalidAction, "unknown action %q", s)
}
