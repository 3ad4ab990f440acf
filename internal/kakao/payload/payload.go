// Package payload decodes the requests Open Builder sends to skill servers.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidPayload is wrapped by every decoding failure.
var ErrInvalidPayload = errors.New("invalid skill payload")

// Payload is the body of a skill request.
type Payload struct {
	Intent      Intent         `json:"intent"`
	UserRequest UserRequest    `json:"userRequest"`
	Bot         Bot            `json:"bot"`
	Action      Action         `json:"action"`
	Contexts    []ContextValue `json:"contexts,omitempty"`
}

type Intent struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Extra IntentExtra `json:"extra"`
}

type IntentExtra struct {
	Reason            map[string]any `json:"reason,omitempty"`
	MatchedKnowledges []Knowledge    `json:"knowledge,omitempty"`
}

// Knowledge is an FAQ entry matched by the knowledge-base intent.
type Knowledge struct {
	Answer     string   `json:"answer"`
	Question   string   `json:"question"`
	Categories []string `json:"categories,omitempty"`
	LandingURL string   `json:"landingUrl,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
}

type UserRequest struct {
	Timezone    string            `json:"timezone"`
	Block       Block             `json:"block"`
	Utterance   string            `json:"utterance"`
	Lang        string            `json:"lang"`
	User        User              `json:"user"`
	Params      map[string]string `json:"params,omitempty"`
	CallbackURL string            `json:"callbackUrl,omitempty"`
}

type Block struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties UserProperties `json:"properties"`
}

type UserProperties struct {
	PlusfriendUserKey string `json:"plusfriendUserKey,omitempty"`
	AppUserID         string `json:"appUserId,omitempty"`
	IsFriend          bool   `json:"isFriend,omitempty"`
}

type Bot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Action is the skill invocation: which block fired and the parameters it
// collected.
type Action struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Params       map[string]string `json:"params,omitempty"`
	DetailParams map[string]Param  `json:"detailParams,omitempty"`
	ClientExtra  map[string]any    `json:"clientExtra,omitempty"`
}

// Param is one resolved block parameter. Value is a JSON string for plain
// entities and an object for plugin entities such as sys.plugin.date.
type Param struct {
	Origin    string          `json:"origin"`
	Value     json.RawMessage `json:"value"`
	GroupName string          `json:"groupName,omitempty"`
}

// String returns the value as text: string values are unquoted, anything
// else is returned as raw JSON.
func (p Param) String() string {
	var s string
	if err := json.Unmarshal(p.Value, &s); err == nil {
		return s
	}
	return string(p.Value)
}

// Decode unmarshals a structured value into v.
func (p Param) Decode(v any) error {
	return json.Unmarshal(p.Value, v)
}

// ContextValue is a conversation context delivered back by the platform.
type ContextValue struct {
	Name     string                  `json:"name"`
	Lifespan int                     `json:"lifespan"`
	TTL      int                     `json:"ttl,omitempty"`
	Params   map[string]ContextParam `json:"params,omitempty"`
}

type ContextParam struct {
	Value         string `json:"value"`
	ResolvedValue string `json:"resolvedValue,omitempty"`
}

// Parse decodes a skill request body.
func Parse(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &p, nil
}

func (p *Payload) UserID() string { return p.UserRequest.User.ID }

func (p *Payload) Utterance() string { return p.UserRequest.Utterance }

func (p *Payload) Params() map[string]string { return p.Action.Params }

// DetailParam returns the text value of a detail parameter.
func (p *Payload) DetailParam(name string) (string, bool) {
	param, ok := p.Action.DetailParams[name]
	if !ok {
		return "", false
	}
	return param.String(), true
}

// DetailOrigin returns what the user actually typed for a detail
// parameter, before entity resolution.
func (p *Payload) DetailOrigin(name string) (string, bool) {
	param, ok := p.Action.DetailParams[name]
	if !ok {
		return "", false
	}
	return param.Origin, true
}

// ClientExtra returns a clientExtra entry set by a button or quick reply,
// formatted as text.
func (p *Payload) ClientExtra(key string) (string, bool) {
	v, ok := p.Action.ClientExtra[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Context returns the named context delivered with the request.
func (p *Payload) Context(name string) (ContextValue, bool) {
	for _, c := range p.Contexts {
		if c.Name == name {
			return c, true
		}
	}
	return ContextValue{}, false
}
