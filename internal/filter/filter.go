// Package filter matches wildfire records against the criteria picked on the
// search screen.
package filter

import (
	"cloud.google.com/go/civil"

	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

// Labels shown by the pickers when a field is not constrained.
const (
	AllCountries  = "All Countries"
	AllSeverities = "All Severities"
)

// Criteria is built fresh for every search. An empty Country or Severity
// matches everything, the same as AllCountries / AllSeverities. Nil date
// bounds are open.
type Criteria struct {
	Country  string
	Severity string
	From     *civil.Date
	To       *civil.Date
}

func NewCriteria() Criteria {
	return Criteria{
		Country:  AllCountries,
		Severity: AllSeverities,
	}
}

func (c Criteria) anyCountry() bool {
	return c.Country == "" || c.Country == AllCountries
}

func (c Criteria) anySeverity() bool {
	return c.Severity == "" || c.Severity == AllSeverities
}

// Empty reports whether c constrains nothing.
func (c Criteria) Empty() bool {
	return c.anyCountry() && c.anySeverity() && c.From == nil && c.To == nil
}

// Matches reports whether r satisfies the country, severity and date-range
// predicates. Both date bounds are inclusive.
func (c Criteria) Matches(r models.Wildfire) bool {
	if !c.anyCountry() && r.Country != c.Country {
		return false
	}
	if !c.anySeverity() && string(r.Severity) != c.Severity {
		return false
	}
	if c.From != nil && r.Date.Before(*c.From) {
		return false
	}
	if c.To != nil && r.Date.After(*c.To) {
		return false
	}
	return true
}

// Search returns the records matching c in their original order. The input
// is never modified and the result is never nil.
func Search(records []models.Wildfire, c Criteria) []models.Wildfire {
	results := make([]models.Wildfire, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			results = append(results, r)
		}
	}
	return results
}
