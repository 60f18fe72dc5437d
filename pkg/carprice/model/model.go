// Package model loads the pre-trained price predictors and runs them on
// encoded feature rows.
package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrShapeMismatch    = errors.New("feature shape mismatch")
	ErrNotFitted        = errors.New("model not fitted")
)

// Regressor predicts a continuous value for each row. It also exposes the
// feature columns it was fitted on.
type Regressor interface {
	Predict(rows [][]float64) ([]float64, error)
	FeatureNames() []string
}

// Classifier predicts a discrete label for each row.
type Classifier interface {
	Predict(rows [][]float64) ([]int, error)
}

// FeatureNamer is implemented by models that know the feature columns they
// were fitted on.
type FeatureNamer interface {
	FeatureNames() []string
}

func checkWidth(rows [][]float64, width int) error {
	for i, r := range rows {
		if len(r) != width {
			return fmt.Errorf("%w: row %d has %d features, model expects %d", ErrShapeMismatch, i, len(r), width)
		}
	}
	return nil
}
