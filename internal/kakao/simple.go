package kakao

import "unicode/utf8"

// MaxSimpleTextLength is the longest text a simpleText bubble may carry.
const MaxSimpleTextLength = 1000

// SimpleText is a plain text bubble.
type SimpleText struct {
	Text string
}

type simpleTextWire struct {
	Text string `json:"text"`
}

func NewSimpleText(text string) *SimpleText {
	return &SimpleText{Text: text}
}

func (s *SimpleText) Kind() Kind { return KindSimpleText }

func (s *SimpleText) Validate() error {
	if err := required("text", s.Text); err != nil {
		return err
	}
	return atMost("text", utf8.RuneCountInString(s.Text), MaxSimpleTextLength)
}

func (s *SimpleText) Render() (any, error) { return render(s) }

func (s *SimpleText) buildWire() any {
	return &simpleTextWire{Text: s.Text}
}

// SimpleImage is a standalone picture.
type SimpleImage struct {
	ImageURL string
	AltText  string
}

type simpleImageWire struct {
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
}

func NewSimpleImage(imageURL, altText string) *SimpleImage {
	return &SimpleImage{ImageURL: imageURL, AltText: altText}
}

func (s *SimpleImage) Kind() Kind { return KindSimpleImage }

func (s *SimpleImage) Validate() error {
	if err := required("imageUrl", s.ImageURL); err != nil {
		return err
	}
	return required("altText", s.AltText)
}

func (s *SimpleImage) Render() (any, error) { return render(s) }

func (s *SimpleImage) buildWire() any {
	return &simpleImageWire{ImageURL: s.ImageURL, AltText: s.AltText}
}
