// Package mlmodel holds the learned click model: a logistic regression, its
// serialized artifact and the process-wide registry that caches it.
package mlmodel

import "math"

// LRModel is a logistic regression classifier.
//
// Prediction is a linear combination of named features pushed through the
// sigmoid: p = 1 / (1 + exp(-(bias + sum(w_i * x_i)))). The output is the
// click probability in (0, 1).
type LRModel struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Predict returns the click probability for one feature row. Features
// without a learned weight contribute nothing.
func (m *LRModel) Predict(features map[string]float64) float64 {
	z := m.Bias
	for name, value := range features {
		if w, ok := m.Weights[name]; ok {
			z += w * value
		}
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
