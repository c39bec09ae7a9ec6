// Package predict holds the prediction input screen: raw text fields that are
// parsed into the numeric inputs a fire-risk model expects.
package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mr1hm/go-wildfire-watch/internal/notify"
)

const (
	TitleInvalid   = "Invalid Input"
	TitleSubmitted = "Input Data"
)

var ErrInvalidInput = errors.New("invalid input")

type Input struct {
	LocationID      int     `json:"location_id" validate:"gt=0"`
	Temperature     float64 `json:"temperature" validate:"gte=-90,lte=60"`
	Humidity        float64 `json:"humidity" validate:"gte=0,lte=100"`
	WindSpeed       float64 `json:"wind_speed" validate:"gte=0"`
	VegetationIndex float64 `json:"vegetation_index" validate:"gte=-1,lte=1"`
}

// Form holds the text exactly as typed.
type Form struct {
	LocationID      string `json:"location_id"`
	Temperature     string `json:"temperature"`
	Humidity        string `json:"humidity"`
	WindSpeed       string `json:"wind_speed"`
	VegetationIndex string `json:"vegetation_index"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var labels = map[string]string{
	"LocationID":      "Location ID",
	"Temperature":     "Temperature (°C)",
	"Humidity":        "Humidity (%)",
	"WindSpeed":       "Wind Speed (km/h)",
	"VegetationIndex": "Vegetation Index",
}

// Parse converts the text fields into an Input and range-checks it.
func (f Form) Parse() (*Input, error) {
	var in Input
	var err error

	if in.LocationID, err = strconv.Atoi(strings.TrimSpace(f.LocationID)); err != nil {
		return nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidInput, labels["LocationID"])
	}

	floats := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"Temperature", f.Temperature, &in.Temperature},
		{"Humidity", f.Humidity, &in.Humidity},
		{"WindSpeed", f.WindSpeed, &in.WindSpeed},
		{"VegetationIndex", f.VegetationIndex, &in.VegetationIndex},
	}
	for _, fl := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(fl.raw), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, labels[fl.name])
		}
		*fl.dst = v
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s is out of range", ErrInvalidInput, labels[verrs[0].StructField()])
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &in, nil
}

// Submit parses the form. Failures are reported through n with the reason;
// on success n receives the input as indented JSON.
func (f Form) Submit(n notify.Notifier) (*Input, error) {
	in, err := f.Parse()
	if err != nil {
		n.Notify(TitleInvalid, reason(err))
		return nil, err
	}

	body, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding input: %w", err)
	}
	n.Notify(TitleSubmitted, string(body))

	return in, nil
}

func reason(err error) string {
	msg := strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
	return msg + "."
}
