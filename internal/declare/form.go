// Package declare holds the state of the declaration screen, where a user
// reports a new wildfire.
package declare

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mr1hm/go-wildfire-watch/internal/notify"
	"github.com/mr1hm/go-wildfire-watch/internal/picker"
)

const (
	TitleMissing   = "Missing Information"
	MessageMissing = "Please enter a location URL."
	TitleSubmitted = "Declaration Submitted"
)

var (
	ErrMissingLocation = errors.New("location is required")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidOption   = errors.New("invalid option")
)

// Declaration is the flat record handed on after a successful submit.
type Declaration struct {
	ID                    string    `json:"id"`
	Location              string    `json:"location"`
	RateOfSpread          string    `json:"rate_of_spread"`
	Wind                  string    `json:"wind"`
	VegetationDensity     string    `json:"vegetation_density"`
	ProximityToStructures string    `json:"proximity_to_structures"`
	Hazardous             bool      `json:"hazardous"`
	Emergency             bool      `json:"emergency"`
	SubmittedAt           time.Time `json:"submitted_at"`
}

// Form is owned by a single interaction and is not safe for concurrent use.
type Form struct {
	location   string
	selections map[Field]string
	dropdowns  map[Field]picker.Visibility
	hazardous  bool
	emergency  bool

	now   func() time.Time
	newID func() string
}

func NewForm() *Form {
	f := &Form{
		selections: make(map[Field]string, len(Fields)),
		dropdowns:  make(map[Field]picker.Visibility, len(Fields)),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, field := range Fields {
		f.selections[field] = NotApplicable
		f.dropdowns[field] = picker.Closed
	}
	return f
}

func (f *Form) SetLocation(location string) {
	f.location = location
}

// Location returns the text as typed, untrimmed.
func (f *Form) Location() string {
	return f.location
}

func (f *Form) Selection(field Field) string {
	return f.selections[field]
}

// Select records value for field and closes its dropdown.
func (f *Form) Select(field Field, value string) error {
	if _, ok := options[field]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if !validOption(field, value) {
		return fmt.Errorf("%w for %s: %q", ErrInvalidOption, field, value)
	}
	f.selections[field] = value
	f.dropdowns[field] = picker.Closed
	return nil
}

// ToggleDropdown opens field's dropdown if closed and closes it if open.
func (f *Form) ToggleDropdown(field Field) {
	if _, ok := f.dropdowns[field]; !ok {
		return
	}
	f.dropdowns[field] = f.dropdowns[field].Toggle()
}

func (f *Form) Dropdown(field Field) picker.Visibility {
	return f.dropdowns[field]
}

func (f *Form) ToggleHazardous() { f.hazardous = !f.hazardous }
func (f *Form) ToggleEmergency() { f.emergency = !f.emergency }

func (f *Form) Hazardous() bool { return f.hazardous }
func (f *Form) Emergency() bool { return f.emergency }

// Submit checks the location and, if present, packages the form into a
// Declaration and notifies n with it as indented JSON. A blank location is
// reported through n and ErrMissingLocation is returned with no payload.
func (f *Form) Submit(n notify.Notifier) (*Declaration, error) {
	location := strings.TrimSpace(f.location)
	if location == "" {
		n.Notify(TitleMissing, MessageMissing)
		return nil, ErrMissingLocation
	}

	d := &Declaration{
		ID:                    f.newID(),
		Location:              location,
		RateOfSpread:          f.selections[FieldRateOfSpread],
		Wind:                  f.selections[FieldWind],
		VegetationDensity:     f.selections[FieldVegetation],
		ProximityToStructures: f.selections[FieldProximity],
		Hazardous:             f.hazardous,
		Emergency:             f.emergency,
		SubmittedAt:           f.now().UTC(),
	}

	body, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding declaration: %w", err)
	}
	n.Notify(TitleSubmitted, string(body))

	return d, nil
}
