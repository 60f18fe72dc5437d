package dal

import (
	"errors"
	"fmt"
)

// Field names as they appear in requests and in encoded column names.
const (
	FieldMake       = "make"
	FieldFuelType   = "fuel_type"
	FieldNumDoors   = "num_doors"
	FieldBodyStyle  = "body_style"
	FieldHorsepower = "horsepower"
	FieldCityMPG    = "city_mpg"
)

// Widget bounds for the numeric inputs.
const (
	HorsepowerMin     = 50
	HorsepowerMax     = 500
	HorsepowerDefault = 100

	CityMPGMin     = 10
	CityMPGMax     = 50
	CityMPGDefault = 25
)

var (
	ErrMissingField = errors.New("missing field")
	ErrOutOfBounds  = errors.New("value out of bounds")
)

// Vehicle defines one submission of vehicle attributes
type Vehicle struct {
	Make       string `json:"make"`
	FuelType   string `json:"fuel_type"`
	NumDoors   string `json:"num_doors"`
	BodyStyle  string `json:"body_style"`
	Horsepower int    `json:"horsepower"`
	CityMPG    int    `json:"city_mpg"`
}

// CategoricalValue is one categorical field of a Vehicle.
type CategoricalValue struct {
	Field string
	Value string
}

// NumericValue is one numerical field of a Vehicle.
type NumericValue struct {
	Field string
	Value float64
}

// Categorical returns the categorical fields in declaration order.
func (v Vehicle) Categorical() []CategoricalValue {
	return []CategoricalValue{
		{Field: FieldMake, Value: v.Make},
		{Field: FieldFuelType, Value: v.FuelType},
		{Field: FieldNumDoors, Value: v.NumDoors},
		{Field: FieldBodyStyle, Value: v.BodyStyle},
	}
}

// Numerical returns the numerical fields in declaration order.
func (v Vehicle) Numerical() []NumericValue {
	return []NumericValue{
		{Field: FieldHorsepower, Value: float64(v.Horsepower)},
		{Field: FieldCityMPG, Value: float64(v.CityMPG)},
	}
}

// NumericFields lists the names of the numerical fields.
func NumericFields() []string {
	return []string{FieldHorsepower, FieldCityMPG}
}

// Validate checks that every categorical field is set and that the numeric
// fields are within the widget bounds. Catalog membership is not checked.
func (v Vehicle) Validate() error {
	for _, c := range v.Categorical() {
		if c.Value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, c.Field)
		}
	}
	if v.Horsepower < HorsepowerMin || v.Horsepower > HorsepowerMax {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrOutOfBounds, FieldHorsepower, HorsepowerMin, HorsepowerMax, v.Horsepower)
	}
	if v.CityMPG < CityMPGMin || v.CityMPG > CityMPGMax {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrOutOfBounds, FieldCityMPG, CityMPGMin, CityMPGMax, v.CityMPG)
	}
	return nil
}

// ClampHorsepower keeps hp within the widget bounds.
func ClampHorsepower(hp int) int {
	return clamp(hp, HorsepowerMin, HorsepowerMax)
}

// ClampCityMPG keeps mpg within the widget bounds.
func ClampCityMPG(mpg int) int {
	return clamp(mpg, CityMPGMin, CityMPGMax)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PredictionResponse defines an HTTP response struct
type PredictionResponse struct {
	Vehicle      Vehicle `json:"vehicle"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Category     string  `json:"category"`
	Label        string  `json:"label"`
}

// CatalogResponse lists the allowed values of each categorical field.
type CatalogResponse struct {
	Fields []CatalogField `json:"fields"`
}

// CatalogField is one entry of a CatalogResponse.
type CatalogField struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SchemaResponse lists the feature columns expected by the models.
type SchemaResponse struct {
	Columns []string `json:"columns"`
	Drift   []string `json:"drift,omitempty"`
}
