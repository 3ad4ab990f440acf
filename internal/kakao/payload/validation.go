package payload

import (
	"encoding/json"
	"fmt"
	"io"
)

// ValidationPayload is the body of a parameter validation request.
type ValidationPayload struct {
	IsInSlotFilling bool            `json:"isInSlotFilling"`
	Utterance       string          `json:"utterance"`
	Value           ValidationValue `json:"value"`
	User            User            `json:"user"`
}

type ValidationValue struct {
	Origin   string `json:"origin"`
	Resolved string `json:"resolved"`
}

// ParseValidation decodes a validation request body.
func ParseValidation(r io.Reader) (*ValidationPayload, error) {
	var p ValidationPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &p, nil
}
