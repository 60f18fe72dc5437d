package model

import "math"

// LinearRegression is y = intercept + coef · x.
type LinearRegression struct {
	Features     []string
	Coefficients []float64
	Intercept    float64
}

// FeatureNames returns the columns the model was fitted on.
func (m *LinearRegression) FeatureNames() []string {
	return append([]string(nil), m.Features...)
}

// Predict returns one price per row.
func (m *LinearRegression) Predict(rows [][]float64) ([]float64, error) {
	if len(m.Coefficients) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkWidth(rows, len(m.Coefficients)); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = dot(m.Coefficients, r) + m.Intercept
	}
	return out, nil
}

// LogisticRegression labels a row 1 when sigmoid(intercept + coef · x)
// reaches Threshold, 0 otherwise.
type LogisticRegression struct {
	Features     []string
	Coefficients []float64
	Intercept    float64
	Threshold    float64
}

// FeatureNames returns the columns the model was fitted on, if the artifact
// recorded them.
func (m *LogisticRegression) FeatureNames() []string {
	return append([]string(nil), m.Features...)
}

// Predict returns one 0/1 label per row.
func (m *LogisticRegression) Predict(rows [][]float64) ([]int, error) {
	if len(m.Coefficients) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkWidth(rows, len(m.Coefficients)); err != nil {
		return nil, err
	}
	threshold := m.Threshold
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.5
	}
	out := make([]int, len(rows))
	for i, r := range rows {
		if sigmoid(dot(m.Coefficients, r)+m.Intercept) >= threshold {
			out[i] = 1
		}
	}
	return out, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
