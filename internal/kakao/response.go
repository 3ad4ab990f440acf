package kakao

import (
	"bytes"
	"encoding/json"
)

// Envelope limits.
const (
	Version         = "2.0"
	MaxOutputs      = 3
	MaxQuickReplies = 10
)

// QuickReply is a suggested reply chip shown under the response. It must
// either send a message or call a block.
type QuickReply struct {
	Label string
	Interaction
}

type quickReplyWire struct {
	Label string `json:"label"`
	actionWire
}

// NewMessageQuickReply sends text when tapped.
func NewMessageQuickReply(label, text string) QuickReply {
	return QuickReply{Label: label, Interaction: Interaction{Action: ActionMessage, MessageText: text}}
}

// NewBlockQuickReply calls blockID when tapped.
func NewBlockQuickReply(label, blockID, text string, extra map[string]any) QuickReply {
	return QuickReply{Label: label, Interaction: Interaction{
		Action: ActionBlock, BlockID: blockID, MessageText: text, Extra: extra,
	}}
}

func (q QuickReply) validate() error {
	if err := required("label", q.Label); err != nil {
		return err
	}
	if q.Action == ActionNone {
		return newError(ErrInvalidAction, "quick reply %q has no action", q.Label)
	}
	return q.Interaction.validate(quickReplyActions)
}

func (q QuickReply) buildWire() quickReplyWire {
	return quickReplyWire{Label: q.Label, actionWire: q.Interaction.buildWire()}
}

// Context is conversation state the platform hands back on later turns.
// Lifespan counts turns; TTL, when set, is in seconds.
type Context struct {
	Name     string
	Lifespan int
	TTL      *int
	Params   map[string]string
}

type contextWire struct {
	Name     string            `json:"name"`
	Lifespan int               `json:"lifespan"`
	TTL      *int              `json:"ttl,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

func (c Context) validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if c.Lifespan < 0 {
		return newError(ErrContractViolation, "lifespan must not be negative, got %d", c.Lifespan)
	}
	if c.TTL != nil && *c.TTL < 0 {
		return newError(ErrContractViolation, "ttl must not be negative, got %d", *c.TTL)
	}
	return nil
}

func (c Context) buildWire() contextWire {
	return contextWire{Name: c.Name, Lifespan: c.Lifespan, TTL: c.TTL, Params: c.Params}
}

// Response is the skill response envelope for one conversation turn.
// Build it, then call Render or JSON once at the response boundary.
type Response struct {
	components   []Component
	quickReplies []QuickReply
	contexts     []Context
	Data         map[string]any
}

// Document is the rendered wire form of a Response.
type Document struct {
	Version  string         `json:"version"`
	Template *Template      `json:"template,omitempty"`
	Context  *ContextList   `json:"context,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

type Template struct {
	Outputs      []Output         `json:"outputs"`
	QuickReplies []quickReplyWire `json:"quickReplies,omitempty"`
}

type ContextList struct {
	Values []contextWire `json:"values"`
}

func NewResponse() *Response { return &Response{} }

// AddComponent appends c. An empty carousel is skipped.
func (r *Response) AddComponent(c Component) *Response {
	if c == nil {
		return r
	}
	if cr, ok := c.(*Carousel); ok && cr.IsEmpty() {
		return r
	}
	r.components = append(r.components, c)
	return r
}

// AddText is shorthand for AddComponent(NewSimpleText(text)).
func (r *Response) AddText(text string) *Response {
	return r.AddComponent(NewSimpleText(text))
}

func (r *Response) AddQuickReply(q QuickReply) *Response {
	r.quickReplies = append(r.quickReplies, q)
	return r
}

func (r *Response) AddMessageQuickReply(label, text string) *Response {
	return r.AddQuickReply(NewMessageQuickReply(label, text))
}

func (r *Response) AddBlockQuickReply(label, blockID string, extra map[string]any) *Response {
	return r.AddQuickReply(NewBlockQuickReply(label, blockID, "", extra))
}

func (r *Response) AddContext(c Context) *Response {
	r.contexts = append(r.contexts, c)
	return r
}

func (r *Response) AddContextValue(name string, lifespan int, params map[string]string) *Response {
	return r.AddContext(Context{Name: name, Lifespan: lifespan, Params: params})
}

func (r *Response) Components() []Component { return append([]Component(nil), r.components...) }

func (r *Response) QuickReplies() []QuickReply { return append([]QuickReply(nil), r.quickReplies...) }

func (r *Response) IsEmpty() bool { return len(r.components) == 0 }

// Merge returns a new response holding r's components and quick replies
// followed by other's. Contexts and data are taken from r.
func (r *Response) Merge(other *Response) *Response {
	if other == nil {
		other = &Response{}
	}
	out := &Response{
		components:   append(append([]Component(nil), r.components...), other.components...),
		quickReplies: append(append([]QuickReply(nil), r.quickReplies...), other.quickReplies...),
		contexts:     append([]Context(nil), r.contexts...),
		Data:         r.Data,
	}
	return out
}

// Validate checks the envelope limits and then every element, quick reply
// and context in order.
func (r *Response) Validate() error {
	if err := atMost("outputs", len(r.components), MaxOutputs); err != nil {
		return err
	}
	if err := atMost("quickReplies", len(r.quickReplies), MaxQuickReplies); err != nil {
		return err
	}
	for i, c := range r.components {
		if err := c.Validate(); err != nil {
			return within(within(err, c.Kind().Tag()), index("outputs", i))
		}
	}
	for i, q := range r.quickReplies {
		if err := q.validate(); err != nil {
			return within(err, index("quickReplies", i))
		}
	}
	for i, c := range r.contexts {
		if err := c.validate(); err != nil {
			return within(err, index("context.values", i))
		}
	}
	return nil
}

// Render validates r and builds its wire document.
func (r *Response) Render() (*Document, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	doc := &Document{Version: Version, Data: r.Data}
	if len(r.components) > 0 {
		doc.Template = &Template{Outputs: make([]Output, len(r.components))}
		for i, c := range r.components {
			doc.Template.Outputs[i] = newOutput(c.buildWire())
		}
		for _, q := range r.quickReplies {
			doc.Template.QuickReplies = append(doc.Template.QuickReplies, q.buildWire())
		}
	}
	if len(r.contexts) > 0 {
		doc.Context = &ContextList{Values: make([]contextWire, len(r.contexts))}
		for i, c := range r.contexts {
			doc.Context.Values[i] = c.buildWire()
		}
	}
	return doc, nil
}

// JSON renders r as UTF-8 JSON. Non-ASCII text and HTML characters are
// written as is.
func (r *Response) JSON() ([]byte, error) {
	doc, err := r.Render()
	if err != nil {
		return nil, err
	}
	return Marshal(doc)
}

// Marshal encodes v without HTML escaping and without a trailing newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
