package artifact

import (
	"fmt"
	"math"
)

// Scaler maps raw feature rows onto the scale the model was fitted on.
type Scaler interface {
	Transform(rows [][]float64) ([][]float64, error)
}

// StandardScaler applies (x - mean) / scale per column.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d: got %d features, scaler expects %d", i, len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// MinMaxScaler applies x*scale + min per column.
type MinMaxScaler struct {
	Min   []float64
	Scale []float64
}

func (s *MinMaxScaler) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Min) {
			return nil, fmt.Errorf("row %d: got %d features, scaler expects %d", i, len(row), len(s.Min))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = v*s.Scale[j] + s.Min[j]
		}
		out[i] = scaled
	}
	return out, nil
}

type scalerDoc struct {
	Kind         string    `json:"kind" yaml:"kind" toml:"kind"`
	FeatureNames []string  `json:"feature_names,omitempty" yaml:"feature_names,omitempty" toml:"feature_names,omitempty"`
	Mean         []float64 `json:"mean,omitempty" yaml:"mean,omitempty" toml:"mean,omitempty"`
	Scale        []float64 `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Min          []float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
}

func (d scalerDoc) build() (Scaler, error) {
	if err := checkFeatureNames(d.FeatureNames); err != nil {
		return nil, err
	}
	switch d.Kind {
	case "standard", "":
		if err := checkWidth("mean", d.Mean); err != nil {
			return nil, err
		}
		if err := checkWidth("scale", d.Scale); err != nil {
			return nil, err
		}
		// Constant columns were fitted with a zero scale; the fitting library
		// divides by 1 in that case.
		scale := make([]float64, len(d.Scale))
		for i, v := range d.Scale {
			if v == 0 {
				v = 1
			}
			scale[i] = v
		}
		return &StandardScaler{Mean: append([]float64(nil), d.Mean...), Scale: scale}, nil
	case "minmax":
		if err := checkWidth("min", d.Min); err != nil {
			return nil, err
		}
		if err := checkWidth("scale", d.Scale); err != nil {
			return nil, err
		}
		return &MinMaxScaler{Min: append([]float64(nil), d.Min...), Scale: append([]float64(nil), d.Scale...)}, nil
	default:
		return nil, fmt.Errorf("unsupported scaler kind %q", d.Kind)
	}
}

func checkWidth(name string, vs []float64) error {
	if len(vs) != len(FeatureNames) {
		return fmt.Errorf("%s: got %d values, want %d", name, len(vs), len(FeatureNames))
	}
	return checkFinite(name, vs)
}

func checkFinite(name string, vs []float64) error {
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s[%d] is not finite", name, i)
		}
	}
	return nil
}
