package declare

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mr1hm/go-wildfire-watch/internal/notify"
	"github.com/mr1hm/go-wildfire-watch/internal/picker"
)

var fixedNow = time.Date(2024, time.December, 5, 10, 0, 0, 0, time.UTC)

func newTestForm() *Form {
	f := NewForm()
	f.now = func() time.Time { return fixedNow }
	f.newID = func() string { return "decl-1" }
	return f
}

func TestSubmit_MissingLocation(t *testing.T) {
	for _, location := range []string{"", "   ", "\t\n"} {
		var rec notify.Recorder
		f := newTestForm()
		f.SetLocation(location)

		d, err := f.Submit(&rec)
		if !errors.Is(err, ErrMissingLocation) {
			t.Errorf("location %q: expected ErrMissingLocation, got %v", location, err)
		}
		if d != nil {
			t.Errorf("location %q: expected no payload, got %+v", location, d)
		}

		want := []notify.Message{{Title: TitleMissing, Body: MessageMissing}}
		if diff := cmp.Diff(want, rec.Messages()); diff != "" {
			t.Errorf("location %q: notifications mismatch (-want +got):\n%s", location, diff)
		}
	}
}

func TestSubmit_Defaults(t *testing.T) {
	var rec notify.Recorder
	f := newTestForm()
	f.SetLocation("http://example.com/loc")

	d, err := f.Submit(&rec)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	want := &Declaration{
		ID:                    "decl-1",
		Location:              "http://example.com/loc",
		RateOfSpread:          NotApplicable,
		Wind:                  NotApplicable,
		VegetationDensity:     NotApplicable,
		ProximityToStructures: NotApplicable,
		Hazardous:             false,
		Emergency:             false,
		SubmittedAt:           fixedNow,
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Declaration mismatch (-want +got):\n%s", diff)
	}

	last, ok := rec.Last()
	if !ok || last.Title != TitleSubmitted {
		t.Fatalf("expected submitted notification, got %+v", last)
	}

	var body Declaration
	if err := json.Unmarshal([]byte(last.Body), &body); err != nil {
		t.Fatalf("notification body is not the declaration JSON: %v", err)
	}
	if diff := cmp.Diff(*want, body); diff != "" {
		t.Errorf("notification body mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_TrimsLocation(t *testing.T) {
	var rec notify.Recorder
	f := newTestForm()
	f.SetLocation("  https://maps.example/fire  ")

	d, err := f.Submit(&rec)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if d.Location != "https://maps.example/fire" {
		t.Errorf("expected trimmed location, got %q", d.Location)
	}
}

func TestSubmit_WithSelections(t *testing.T) {
	var rec notify.Recorder
	f := newTestForm()
	f.SetLocation("https://maps.example/fire")

	selections := map[Field]string{
		FieldRateOfSpread: "Fast",
		FieldWind:         "Strong",
		FieldVegetation:   "Dense",
		FieldProximity:    "Under 1 km",
	}
	for field, value := range selections {
		if err := f.Select(field, value); err != nil {
			t.Fatalf("Select(%s, %s) failed: %v", field, value, err)
		}
	}
	f.ToggleHazardous()
	f.ToggleEmergency()

	d, err := f.Submit(&rec)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if d.RateOfSpread != "Fast" || d.Wind != "Strong" || d.VegetationDensity != "Dense" || d.ProximityToStructures != "Under 1 km" {
		t.Errorf("selections not carried into declaration: %+v", d)
	}
	if !d.Hazardous || !d.Emergency {
		t.Errorf("expected both flags set, got hazardous=%v emergency=%v", d.Hazardous, d.Emergency)
	}
}

func TestFlagsAreIndependent(t *testing.T) {
	f := NewForm()

	f.ToggleEmergency()
	if f.Hazardous() {
		t.Error("toggling emergency should not touch hazardous")
	}
	f.ToggleEmergency()
	if f.Emergency() {
		t.Error("second toggle should clear emergency")
	}
}

func TestLocation_KeepsRawText(t *testing.T) {
	f := NewForm()
	if f.Location() != "" {
		t.Errorf("expected empty location, got %q", f.Location())
	}

	f.SetLocation("  https://maps.example/fire  ")
	if f.Location() != "  https://maps.example/fire  " {
		t.Errorf("expected untrimmed location, got %q", f.Location())
	}
}

func TestSelect_Invalid(t *testing.T) {
	f := NewForm()

	if err := f.Select(FieldWind, "Hurricane"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
	if f.Selection(FieldWind) != NotApplicable {
		t.Errorf("invalid select should keep the default, got %q", f.Selection(FieldWind))
	}

	if err := f.Select(Field("humidity"), "High"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestDropdowns(t *testing.T) {
	f := NewForm()

	for _, field := range Fields {
		if f.Dropdown(field) != picker.Closed {
			t.Errorf("%s dropdown should start closed", field)
		}
	}

	f.ToggleDropdown(FieldVegetation)
	if f.Dropdown(FieldVegetation) != picker.Open {
		t.Error("expected vegetation dropdown open")
	}
	if f.Dropdown(FieldWind) != picker.Closed {
		t.Error("other dropdowns should stay closed")
	}

	if err := f.Select(FieldVegetation, "Sparse"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if f.Dropdown(FieldVegetation) != picker.Closed {
		t.Error("selecting should close the dropdown")
	}

	// unknown fields are ignored
	f.ToggleDropdown(Field("nope"))
	if f.Dropdown(Field("nope")) != picker.Closed {
		t.Error("unknown dropdown should report closed")
	}
}

func TestOptions(t *testing.T) {
	for _, field := range Fields {
		opts := Options(field)
		if len(opts) < 2 || opts[0] != NotApplicable {
			t.Errorf("%s: expected %q first, got %v", field, NotApplicable, opts)
		}
	}

	opts := Options(FieldWind)
	opts[0] = "mutated"
	if Options(FieldWind)[0] != NotApplicable {
		t.Error("Options should return a copy")
	}

	if len(AllOptions()) != len(Fields) {
		t.Errorf("expected %d option lists, got %d", len(Fields), len(AllOptions()))
	}
	if Options(Field("unknown")) != nil {
		t.Error("unknown field should have no options")
	}
}
