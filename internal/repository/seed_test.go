package repository

import (
	"context"
	"strings"
	"testing"
)

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}

	if len(seed.Wildfires) == 0 {
		t.Fatal("expected seeded wildfires")
	}
	first := seed.Wildfires[0]
	if first.ID != 1 || first.Country != "United States" || first.Date.String() != "2024-12-01" {
		t.Errorf("unexpected first record: %+v", first)
	}

	for _, w := range seed.Wildfires {
		if !w.Severity.Valid() {
			t.Errorf("wildfire %d has invalid severity %q", w.ID, w.Severity)
		}
		if !w.Date.IsValid() {
			t.Errorf("wildfire %d has invalid date %v", w.ID, w.Date)
		}
	}
}

func TestLoadSeed_CountriesSorted(t *testing.T) {
	seed, err := LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}

	if len(seed.Countries) < 190 {
		t.Errorf("expected the full country list, got %d", len(seed.Countries))
	}
	if seed.Countries[0] != "Afghanistan" {
		t.Errorf("expected Afghanistan first, got %s", seed.Countries[0])
	}

	// São Tomé sorts with the other S names, not after Z
	last := seed.Countries[len(seed.Countries)-1]
	if last != "Zimbabwe" {
		t.Errorf("expected Zimbabwe last, got %s", last)
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	countries := []byte("countries: [France]")

	tests := []struct {
		name      string
		wildfires string
		wantErr   string
	}{
		{
			name: "unknown severity",
			wildfires: `
wildfires:
  - id: 1
    country: France
    severity: Apocalyptic
    date: "2024-01-01"`,
			wantErr: "unknown severity",
		},
		{
			name: "bad date",
			wildfires: `
wildfires:
  - id: 1
    country: France
    severity: Low (0-10)
    date: "2024-02-30"`,
			wantErr: "invalid date",
		},
		{
			name: "duplicate id",
			wildfires: `
wildfires:
  - id: 1
    country: France
    severity: Low (0-10)
    date: "2024-01-01"
  - id: 1
    country: Spain
    severity: Low (0-10)
    date: "2024-01-02"`,
			wantErr: "duplicate wildfire id",
		},
		{
			name: "bad reported_at",
			wildfires: `
wildfires:
  - id: 1
    country: France
    severity: Low (0-10)
    date: "2024-01-01"
    reported_at: yesterday`,
			wantErr: "invalid reported_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.wildfires), countries)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	seed, err := LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	store := NewMemoryStore(seed)
	ctx := context.Background()

	wildfires, _ := store.Wildfires(ctx)
	wildfires[0].Country = "Atlantis"

	again, _ := store.Wildfires(ctx)
	if again[0].Country == "Atlantis" {
		t.Error("mutating a returned slice changed the store")
	}

	w, err := store.WildfireByID(ctx, 3)
	if err != nil {
		t.Fatalf("WildfireByID failed: %v", err)
	}
	if w.Country != "France" {
		t.Errorf("expected France, got %s", w.Country)
	}
}
