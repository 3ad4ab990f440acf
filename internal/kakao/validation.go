package kakao

import "strings"

// ValidationStatus is the verdict of a parameter validation skill.
type ValidationStatus string

const (
	StatusSuccess ValidationStatus = "SUCCESS"
	StatusFail    ValidationStatus = "FAIL"
	StatusError   ValidationStatus = "ERROR"
	StatusIgnore  ValidationStatus = "IGNORE"
)

// ParseValidationStatus accepts any casing of a status name.
func ParseValidationStatus(s string) (ValidationStatus, error) {
	st := ValidationStatus(strings.ToUpper(s))
	switch st {
	case StatusSuccess, StatusFail, StatusError, StatusIgnore:
		return st, nil
	}
	return "", newError(ErrInvalidType, "unknown validation status %q", s)
}

// ValidationResponse answers a parameter validation request. Value replaces
// the parameter's resolved value on SUCCESS; Message is shown to the user
// on FAIL or ERROR.
type ValidationResponse struct {
	Status  ValidationStatus
	Value   any
	Data    map[string]any
	Message string
}

type validationWire struct {
	Status  ValidationStatus `json:"status"`
	Value   any              `json:"value,omitempty"`
	Data    map[string]any   `json:"data,omitempty"`
	Message string           `json:"message,omitempty"`
}

func ValidationSuccess(value any) *ValidationResponse {
	return &ValidationResponse{Status: StatusSuccess, Value: value}
}

func ValidationFailure(status ValidationStatus, message string) *ValidationResponse {
	return &ValidationResponse{Status: status, Message: message}
}

func (v *ValidationResponse) Validate() error {
	if _, err := ParseValidationStatus(string(v.Status)); err != nil {
		return within(err, "status")
	}
	return nil
}

// Render validates v and returns its wire value.
func (v *ValidationResponse) Render() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &validationWire{
		Status:  ValidationStatus(strings.ToUpper(string(v.Status))),
		Value:   v.Value,
		Data:    v.Data,
		Message: v.Message,
	}, nil
}

func (v *ValidationResponse) JSON() ([]byte, error) {
	w, err := v.Render()
	if err != nil {
		return nil, err
	}
	return Marshal(w)
}
