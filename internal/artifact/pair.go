package artifact

import (
	"errors"
	"fmt"
	"strings"
)

// FeatureNames is the column order both artifacts were fitted on.
var FeatureNames = []string{
	"cycle",
	"avg_temp_discharge_smoothed",
	"internal_resistance_smoothed",
}

// ErrFeatureMismatch reports an artifact fitted on different columns.
var ErrFeatureMismatch = errors.New("feature mismatch")

// LoadError wraps any failure to read or decode an artifact file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return "load artifact " + e.Path + ": " + e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// Pair is a scaler and the model fitted on its output.
type Pair struct {
	scaler Scaler
	model  Model
}

// NewPair pairs an already constructed scaler and model.
func NewPair(s Scaler, m Model) *Pair { return &Pair{scaler: s, model: m} }

// LoadPair loads both artifacts. Either failing fails the pair.
func LoadPair(scalerPath, modelPath string) (*Pair, error) {
	s, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, err
	}
	m, err := LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	return NewPair(s, m), nil
}

// Predict scales a single raw row and returns the model's first output.
func (p *Pair) Predict(row []float64) (float64, error) {
	scaled, err := p.scaler.Transform([][]float64{row})
	if err != nil {
		return 0, fmt.Errorf("transform: %w", err)
	}
	out, err := p.model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("predict: %w", err)
	}
	if len(out) == 0 {
		return 0, errors.New("predict: model returned no values")
	}
	return out[0], nil
}

func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != len(FeatureNames) {
		return fmt.Errorf("%w: got [%s], want [%s]", ErrFeatureMismatch, strings.Join(names, ", "), strings.Join(FeatureNames, ", "))
	}
	for i := range names {
		if names[i] != FeatureNames[i] {
			return fmt.Errorf("%w: got [%s], want [%s]", ErrFeatureMismatch, strings.Join(names, ", "), strings.Join(FeatureNames, ", "))
		}
	}
	return nil
}
