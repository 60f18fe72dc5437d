package dal

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when a classifier emits a label outside the
// Affordable/Expensive convention.
var ErrUnknownLabel = errors.New("unknown class label")

// PriceCategory is the outcome of the classification model.
type PriceCategory int

// The classifier was trained with 1 meaning expensive and 0 affordable.
const (
	Affordable PriceCategory = 0
	Expensive  PriceCategory = 1
)

// ParsePriceCategory maps a raw classifier label to a PriceCategory.
func ParsePriceCategory(label int) (PriceCategory, error) {
	switch PriceCategory(label) {
	case Affordable, Expensive:
		return PriceCategory(label), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownLabel, label)
	}
}

func (c PriceCategory) String() string {
	switch c {
	case Affordable:
		return "affordable"
	case Expensive:
		return "expensive"
	default:
		return fmt.Sprintf("PriceCategory(%d)", int(c))
	}
}

// Prediction pairs the regression and classification outputs for one Vehicle.
type Prediction struct {
	Price    float64
	Category PriceCategory
}
