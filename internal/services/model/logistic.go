package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimension is returned when an input row does not match the model width.
var ErrDimension = errors.New("feature count mismatch")

// Scaler is a fitted standardisation step applied before the linear model.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LogisticRegression is a fitted binary logistic regression exported as JSON.
// It is immutable after loading.
type LogisticRegression struct {
	Type         string    `json:"type"`
	Names        []string  `json:"feature_names,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
}

func (m *LogisticRegression) validate() error {
	n := len(m.Coefficients)
	if n == 0 {
		return fmt.Errorf("logistic regression has no coefficients")
	}
	if len(m.Names) != 0 && len(m.Names) != n {
		return fmt.Errorf("logistic regression has %d feature names for %d coefficients", len(m.Names), n)
	}
	if m.Scaler != nil {
		if len(m.Scaler.Mean) != n || len(m.Scaler.Scale) != n {
			return fmt.Errorf("scaler width does not match %d coefficients", n)
		}
		for i, s := range m.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("scaler scale[%d] is zero", i)
			}
		}
	}
	return nil
}

// FeatureNames returns the training column order if the export carries one.
func (m *LogisticRegression) FeatureNames() []string {
	return m.Names
}

// Width is the number of input features the model expects.
func (m *LogisticRegression) Width() int {
	return len(m.Coefficients)
}

// decision computes the log-odds of the positive class.
func (m *LogisticRegression) decision(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrDimension, len(m.Coefficients), len(x))
	}
	z := m.Intercept
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("feature %d is not a finite number", i)
		}
		if m.Scaler != nil {
			v = (v - m.Scaler.Mean[i]) / m.Scaler.Scale[i]
		}
		z += m.Coefficients[i] * v
	}
	// +Inf and -Inf terms cancel to NaN
	if math.IsNaN(z) {
		return 0, fmt.Errorf("decision function is not a number")
	}
	return z, nil
}

// ClassifyProbability returns P(fraud).
func (m *LogisticRegression) ClassifyProbability(x []float64) (float64, error) {
	z, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	return sigmoid(z), nil
}

// Classify returns 1 when the log-odds are positive.
func (m *LogisticRegression) Classify(x []float64) (int, error) {
	z, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(z float64) float64 {
	// split keeps exp from overflowing for large |z|
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
