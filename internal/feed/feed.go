// Package feed builds the rows of the home screen's recent-wildfire list.
package feed

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

const NoData = "No data available"

type Item struct {
	ID        int             `json:"id"`
	Location  string          `json:"location"`
	Age       string          `json:"time"`
	Magnitude string          `json:"magnitude"`
	Severity  models.Severity `json:"severity"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
}

// Items turns records into list rows, newest report first. Ages are relative
// to now.
func Items(records []models.Wildfire, now time.Time) []Item {
	sorted := make([]models.Wildfire, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Reported().After(sorted[j].Reported())
	})

	items := make([]Item, 0, len(sorted))
	for _, w := range sorted {
		items = append(items, toItem(w, now))
	}
	return items
}

func toItem(w models.Wildfire, now time.Time) Item {
	location := w.Location
	if location == "" {
		location = w.Country
	}

	magnitude := NoData
	if w.Magnitude != nil {
		magnitude = fmt.Sprintf("%.2f", *w.Magnitude)
	}

	return Item{
		ID:        w.ID,
		Location:  location,
		Age:       humanize.RelTime(w.Reported(), now, "ago", "from now"),
		Magnitude: magnitude,
		Severity:  w.Severity,
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
	}
}
