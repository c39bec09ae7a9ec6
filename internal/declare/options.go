package declare

import "slices"

// NotApplicable is the default for every dropdown on the form.
const NotApplicable = "Not applicable"

type Field string

const (
	FieldRateOfSpread Field = "rate_of_spread"
	FieldWind         Field = "wind"
	FieldVegetation   Field = "vegetation_density"
	FieldProximity    Field = "proximity_to_structures"
)

// Fields lists the dropdowns in the order the form shows them.
var Fields = []Field{FieldRateOfSpread, FieldWind, FieldVegetation, FieldProximity}

var options = map[Field][]string{
	FieldRateOfSpread: {NotApplicable, "Slow", "Moderate", "Fast", "Extreme"},
	FieldWind:         {NotApplicable, "Calm", "Light", "Moderate", "Strong"},
	FieldVegetation:   {NotApplicable, "Sparse", "Moderate", "Dense"},
	FieldProximity:    {NotApplicable, "Over 5 km", "1-5 km", "Under 1 km"},
}

// Options returns the choices for field, NotApplicable first. Unknown fields
// have no options.
func Options(field Field) []string {
	return slices.Clone(options[field])
}

// AllOptions returns every dropdown's choices keyed by field.
func AllOptions() map[Field][]string {
	out := make(map[Field][]string, len(options))
	for f, opts := range options {
		out[f] = slices.Clone(opts)
	}
	return out
}

func validOption(field Field, value string) bool {
	return slices.Contains(options[field], value)
}
