// Package picker models the selection controls screens share: dropdown
// visibility and the date picker collaborator.
package picker

import "cloud.google.com/go/civil"

type Visibility int

const (
	Closed Visibility = iota
	Open
)

func (v Visibility) String() string {
	if v == Open {
		return "open"
	}
	return "closed"
}

// Toggle returns the opposite state.
func (v Visibility) Toggle() Visibility {
	if v == Open {
		return Closed
	}
	return Open
}

type Mode string

const ModeDate Mode = "date"

// DatePicker asks the user for a date. ok is false when the user cancels.
type DatePicker interface {
	PickDate(initial civil.Date, mode Mode) (picked civil.Date, ok bool)
}

type DatePickerFunc func(initial civil.Date, mode Mode) (civil.Date, bool)

func (f DatePickerFunc) PickDate(initial civil.Date, mode Mode) (civil.Date, bool) {
	return f(initial, mode)
}
