// Package domain holds the cafeteria types shared by skills and storage.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MealType is either lunch or dinner.
type MealType string

const (
	Lunch  MealType = "lunch"
	Dinner MealType = "dinner"
)

// ParseMealType accepts the English name.
func ParseMealType(s string) (MealType, error) {
	switch MealType(strings.ToLower(s)) {
	case Lunch:
		return Lunch, nil
	case Dinner:
		return Dinner, nil
	}
	return "", fmt.Errorf("unknown meal type %q", s)
}

// Label is the Korean display name.
func (m MealType) Label() string {
	if m == Dinner {
		return "저녁"
	}
	return "점심"
}

// Location is where an approved restaurant is.
type Location string

const (
	OnCampus  Location = "교내"
	OffCampus Location = "교외"
)

// Lookup errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateMenu = errors.New("menu already registered")
)

// Clock is a time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock reads "HH:MM" or "HH:MM:SS" as sent by sys.time entities.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(time.TimeOnly, s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return Clock{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the clock as stored, e.g. "13:05".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Korean formats the clock for display, e.g. "오후 01:05".
func (c Clock) Korean() string {
	half, h := "오전", c.Hour
	if h >= 12 {
		half = "오후"
	}
	if h > 12 {
		h -= 12
	}
	return fmt.Sprintf("%s %02d:%02d", half, h, c.Minute)
}

// Hours is an opening interval.
type Hours struct {
	Open  Clock
	Close Clock
}

func (h Hours) String() string {
	return h.Open.Korean() + " ~ " + h.Close.Korean()
}

// Registration is a restaurant application waiting for approval. Its ID is
// the applicant's bot user key.
type Registration struct {
	ID             string
	Name           string
	PricePerPerson int
	Lunch          Hours
	Dinner         Hours
	CreatedAt      time.Time
}

// Restaurant is an approved cafeteria.
type Restaurant struct {
	ID             string
	Name           string
	Location       Location
	PricePerPerson int
	Lunch          Hours
	Dinner         Hours
	// RegisteredAt is when menus were last published.
	RegisteredAt time.Time
	LunchMenu    []string
	DinnerMenu   []string
}

// Menu returns the published menu for meal.
func (r *Restaurant) Menu(meal MealType) []string {
	if meal == Dinner {
		return r.DinnerMenu
	}
	return r.LunchMenu
}

// SplitMenu splits user input on commas and newlines, trimming blanks.
func SplitMenu(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
