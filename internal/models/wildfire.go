// Package models defines the wildfire records and notifications shared by
// every screen.
package models

import (
	"time"

	"cloud.google.com/go/civil"
)

type Severity string

const (
	SeverityLow      Severity = "Low (0-10)"
	SeverityModerate Severity = "Moderate (11-30)"
	SeverityHigh     Severity = "High (31-50)"
	SeverityVeryHigh Severity = "Very High (51-75)"
	SeverityExtreme  Severity = "Extreme (76-100)"
)

var severities = []Severity{
	SeverityLow,
	SeverityModerate,
	SeverityHigh,
	SeverityVeryHigh,
	SeverityExtreme,
}

// Severities returns the severity bands in ascending order.
func Severities() []Severity {
	out := make([]Severity, len(severities))
	copy(out, severities)
	return out
}

func (s Severity) Valid() bool {
	for _, v := range severities {
		if s == v {
			return true
		}
	}
	return false
}

type Wildfire struct {
	ID         int        `json:"id"`
	Country    string     `json:"country"`
	Severity   Severity   `json:"severity"`
	Date       civil.Date `json:"date"`                 // day the fire was observed
	Location   string     `json:"location,omitempty"`   // e.g. "Pahala, Hawaii"
	ReportedAt time.Time  `json:"reported_at,omitzero"` // when the report came in
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Magnitude  *float64   `json:"magnitude"` // nil when the sensor had no reading
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (w *Wildfire) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
	}
}

// Reported returns ReportedAt, falling back to midnight UTC of Date.
func (w *Wildfire) Reported() time.Time {
	if !w.ReportedAt.IsZero() {
		return w.ReportedAt
	}
	return w.Date.In(time.UTC)
}
