// Package search holds the state of the wildfire search screen: the pickers,
// the criteria they build up, and the last result list.
package search

import (
	"cloud.google.com/go/civil"

	"github.com/mr1hm/go-wildfire-watch/internal/filter"
	"github.com/mr1hm/go-wildfire-watch/internal/models"
	"github.com/mr1hm/go-wildfire-watch/internal/picker"
)

// Screen is owned by a single interaction and is not safe for concurrent use.
type Screen struct {
	Criteria filter.Criteria

	CountryPicker  picker.Visibility
	SeverityPicker picker.Visibility
	FromPicker     picker.Visibility
	ToPicker       picker.Visibility

	Results []models.Wildfire
}

func NewScreen() *Screen {
	return &Screen{
		Criteria: filter.NewCriteria(),
		Results:  []models.Wildfire{},
	}
}

func (s *Screen) OpenCountryPicker()  { s.CountryPicker = picker.Open }
func (s *Screen) CloseCountryPicker() { s.CountryPicker = picker.Closed }

func (s *Screen) OpenSeverityPicker()  { s.SeverityPicker = picker.Open }
func (s *Screen) CloseSeverityPicker() { s.SeverityPicker = picker.Closed }

// SelectCountry sets the country filter and closes its picker. Pass
// filter.AllCountries to drop the constraint.
func (s *Screen) SelectCountry(country string) {
	s.Criteria.Country = country
	s.CountryPicker = picker.Closed
}

func (s *Screen) SelectSeverity(severity string) {
	s.Criteria.Severity = severity
	s.SeverityPicker = picker.Closed
}

// PickFromDate shows the date picker seeded with the current lower bound, or
// today when unset. Cancelling keeps the previous bound.
func (s *Screen) PickFromDate(p picker.DatePicker, today civil.Date) bool {
	s.FromPicker = picker.Open
	defer func() { s.FromPicker = picker.Closed }()

	picked, ok := p.PickDate(initialDate(s.Criteria.From, today), picker.ModeDate)
	if ok {
		s.Criteria.From = &picked
	}
	return ok
}

func (s *Screen) PickToDate(p picker.DatePicker, today civil.Date) bool {
	s.ToPicker = picker.Open
	defer func() { s.ToPicker = picker.Closed }()

	picked, ok := p.PickDate(initialDate(s.Criteria.To, today), picker.ModeDate)
	if ok {
		s.Criteria.To = &picked
	}
	return ok
}

func (s *Screen) ClearDates() {
	s.Criteria.From = nil
	s.Criteria.To = nil
}

// Reset returns every control to its default.
func (s *Screen) Reset() {
	*s = *NewScreen()
}

// Run filters records with the current criteria. Each run replaces the
// previous results.
func (s *Screen) Run(records []models.Wildfire) []models.Wildfire {
	s.Results = filter.Search(records, s.Criteria)
	return s.Results
}

func initialDate(current *civil.Date, today civil.Date) civil.Date {
	if current != nil {
		return *current
	}
	return today
}
