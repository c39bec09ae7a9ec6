package repository

import (
	_ "embed"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

//go:embed seed/wildfires.yaml
var wildfiresYAML []byte

//go:embed seed/countries.yaml
var countriesYAML []byte

type seedWildfire struct {
	ID         int      `yaml:"id"`
	Country    string   `yaml:"country"`
	Severity   string   `yaml:"severity"`
	Date       string   `yaml:"date"`
	Location   string   `yaml:"location"`
	ReportedAt string   `yaml:"reported_at"`
	Latitude   float64  `yaml:"latitude"`
	Longitude  float64  `yaml:"longitude"`
	Magnitude  *float64 `yaml:"magnitude"`
}

type seedWildfires struct {
	Wildfires []seedWildfire `yaml:"wildfires"`
}

type seedCountries struct {
	Countries []string `yaml:"countries"`
}

// Seed is the parsed, validated reference data.
type Seed struct {
	Countries []string
	Wildfires []models.Wildfire
}

// LoadSeed parses the embedded seed files.
func LoadSeed() (*Seed, error) {
	return ParseSeed(wildfiresYAML, countriesYAML)
}

// ParseSeed validates every record: ids are unique, severities are one of the
// fixed bands and dates are real calendar dates. Countries come back sorted
// for display.
func ParseSeed(wildfires, countries []byte) (*Seed, error) {
	var wf seedWildfires
	if err := yaml.Unmarshal(wildfires, &wf); err != nil {
		return nil, fmt.Errorf("error decoding wildfire seed: %w", err)
	}
	var cs seedCountries
	if err := yaml.Unmarshal(countries, &cs); err != nil {
		return nil, fmt.Errorf("error decoding country seed: %w", err)
	}

	seen := make(map[int]bool, len(wf.Wildfires))
	records := make([]models.Wildfire, 0, len(wf.Wildfires))
	for _, s := range wf.Wildfires {
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate wildfire id %d", s.ID)
		}
		seen[s.ID] = true

		w, err := s.toModel()
		if err != nil {
			return nil, fmt.Errorf("wildfire %d: %w", s.ID, err)
		}
		records = append(records, w)
	}

	names := make([]string, 0, len(cs.Countries))
	dup := make(map[string]bool, len(cs.Countries))
	for _, c := range cs.Countries {
		if c == "" || dup[c] {
			continue
		}
		dup[c] = true
		names = append(names, c)
	}
	collate.New(language.English).SortStrings(names)

	return &Seed{
		Countries: names,
		Wildfires: records,
	}, nil
}

func (s seedWildfire) toModel() (models.Wildfire, error) {
	sev := models.Severity(s.Severity)
	if !sev.Valid() {
		return models.Wildfire{}, fmt.Errorf("unknown severity %q", s.Severity)
	}

	d, err := civil.ParseDate(s.Date)
	if err != nil {
		return models.Wildfire{}, fmt.Errorf("invalid date %q: %w", s.Date, err)
	}

	w := models.Wildfire{
		ID:        s.ID,
		Country:   s.Country,
		Severity:  sev,
		Date:      d,
		Location:  s.Location,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Magnitude: s.Magnitude,
	}

	if s.ReportedAt != "" {
		at, err := time.Parse(time.RFC3339, s.ReportedAt)
		if err != nil {
			return models.Wildfire{}, fmt.Errorf("invalid reported_at %q: %w", s.ReportedAt, err)
		}
		w.ReportedAt = at
	}

	return w, nil
}
