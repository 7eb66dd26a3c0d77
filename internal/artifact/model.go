package artifact

import (
	"errors"
	"fmt"
)

// Model predicts one value per scaled feature row.
type Model interface {
	Predict(rows [][]float64) ([]float64, error)
}

// Tree is a fitted regression tree stored as flattened node arrays. Node i is
// a leaf when ChildrenLeft[i] == -1; otherwise rows with
// x[Feature[i]] <= Threshold[i] descend left.
type Tree struct {
	ChildrenLeft  []int
	ChildrenRight []int
	Feature       []int
	Threshold     []float64
	Value         []float64
}

const leaf = -1

func (t *Tree) predict(row []float64) (float64, error) {
	idx := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps <= len(t.Value); steps++ {
		left := t.ChildrenLeft[idx]
		if left == leaf {
			return t.Value[idx], nil
		}
		// splits were fitted on float32 features
		if float64(float32(row[t.Feature[idx]])) <= t.Threshold[idx] {
			idx = left
		} else {
			idx = t.ChildrenRight[idx]
		}
	}
	return 0, errors.New("tree walk did not reach a leaf")
}

func (t *Tree) validate(nFeatures int) error {
	n := len(t.Value)
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenLeft) != n || len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n {
		return fmt.Errorf("node arrays disagree in length (value has %d nodes)", n)
	}
	if err := checkFinite("value", t.Value); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if l == leaf {
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return fmt.Errorf("node %d: children (%d, %d) out of range", i, l, r)
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, f)
		}
	}
	return checkFinite("threshold", splitThresholds(t))
}

func splitThresholds(t *Tree) []float64 {
	out := make([]float64, 0, len(t.Threshold))
	for i, v := range t.Threshold {
		if t.ChildrenLeft[i] != leaf {
			out = append(out, v)
		}
	}
	return out
}

// Forest averages the predictions of its trees.
type Forest struct {
	Trees     []Tree
	NFeatures int
}

func (f *Forest) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != f.NFeatures {
			return nil, fmt.Errorf("row %d: got %d features, model expects %d", i, len(row), f.NFeatures)
		}
		var sum float64
		for j := range f.Trees {
			v, err := f.Trees[j].predict(row)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", j, err)
			}
			sum += v
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out, nil
}

// Linear computes intercept + coef·x.
type Linear struct {
	Coef      []float64
	Intercept float64
}

func (m *Linear) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(m.Coef) {
			return nil, fmt.Errorf("row %d: got %d features, model expects %d", i, len(row), len(m.Coef))
		}
		v := m.Intercept
		for j, x := range row {
			v += m.Coef[j] * x
		}
		out[i] = v
	}
	return out, nil
}

type treeDoc struct {
	ChildrenLeft  []int     `json:"children_left" yaml:"children_left" toml:"children_left"`
	ChildrenRight []int     `json:"children_right" yaml:"children_right" toml:"children_right"`
	Feature       []int     `json:"feature" yaml:"feature" toml:"feature"`
	Threshold     []float64 `json:"threshold" yaml:"threshold" toml:"threshold"`
	Value         []float64 `json:"value" yaml:"value" toml:"value"`
}

type modelDoc struct {
	Kind         string    `json:"kind" yaml:"kind" toml:"kind"`
	FeatureNames []string  `json:"feature_names,omitempty" yaml:"feature_names,omitempty" toml:"feature_names,omitempty"`
	NFeatures    int       `json:"n_features,omitempty" yaml:"n_features,omitempty" toml:"n_features,omitempty"`
	Trees        []treeDoc `json:"trees,omitempty" yaml:"trees,omitempty" toml:"trees,omitempty"`
	Coef         []float64 `json:"coef,omitempty" yaml:"coef,omitempty" toml:"coef,omitempty"`
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty" toml:"intercept,omitempty"`
}

func (d modelDoc) build() (Model, error) {
	if err := checkFeatureNames(d.FeatureNames); err != nil {
		return nil, err
	}
	n := len(FeatureNames)
	if d.NFeatures != 0 && d.NFeatures != n {
		return nil, fmt.Errorf("%w: model fitted on %d features, want %d", ErrFeatureMismatch, d.NFeatures, n)
	}
	switch d.Kind {
	case "random_forest":
		if len(d.Trees) == 0 {
			return nil, errors.New("random_forest: no trees")
		}
		f := &Forest{Trees: make([]Tree, len(d.Trees)), NFeatures: n}
		for i, td := range d.Trees {
			t := Tree{
				ChildrenLeft:  td.ChildrenLeft,
				ChildrenRight: td.ChildrenRight,
				Feature:       td.Feature,
				Threshold:     td.Threshold,
				Value:         td.Value,
			}
			if err := t.validate(n); err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			f.Trees[i] = t
		}
		return f, nil
	case "linear":
		if err := checkWidth("coef", d.Coef); err != nil {
			return nil, err
		}
		if err := checkFinite("intercept", []float64{d.Intercept}); err != nil {
			return nil, err
		}
		return &Linear{Coef: append([]float64(nil), d.Coef...), Intercept: d.Intercept}, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", d.Kind)
	}
}
