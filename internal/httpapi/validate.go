package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"sohd/pkg/types"
)

const (
	fieldCycle      = "cycle"
	fieldTemp       = "avg_temp_discharge_smoothed"
	fieldResistance = "internal_resistance_smoothed"
)

// errNotObject is returned when the body is valid JSON but not an object.
var errNotObject = errors.New("body is not a JSON object")

// decodePredictRequest parses a /predict body. A non-nil error means the body
// is not JSON at all; field problems are reported in the returned detail so
// every bad field can be listed at once.
func decodePredictRequest(body []byte) (types.PredictRequest, []types.FieldError, error) {
	var req types.PredictRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return req, []types.FieldError{{Loc: []string{"body"}, Msg: "input should be a JSON object", Type: "model_attributes_type"}}, nil
		}
		return req, nil, err
	}
	if raw == nil {
		// literal null
		return req, []types.FieldError{{Loc: []string{"body"}, Msg: "input should be a JSON object", Type: "model_attributes_type"}}, nil
	}

	var detail []types.FieldError
	if n, fe := intField(raw, fieldCycle); fe != nil {
		detail = append(detail, *fe)
	} else {
		req.Cycle = n
	}
	if v, fe := floatField(raw, fieldTemp); fe != nil {
		detail = append(detail, *fe)
	} else {
		req.AvgTempDischargeSmoothed = v
	}
	if v, fe := floatField(raw, fieldResistance); fe != nil {
		detail = append(detail, *fe)
	} else {
		req.InternalResistanceSmoothed = v
	}
	return req, detail, nil
}

func fieldError(name, msg, typ string) *types.FieldError {
	return &types.FieldError{Loc: []string{"body", name}, Msg: msg, Type: typ}
}

// number returns the JSON number held by raw, or false when raw holds any
// other JSON value. Strings are not coerced.
func number(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	return n, ok
}

func present(raw map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	v, ok := raw[name]
	if !ok || string(bytes.TrimSpace(v)) == "null" {
		return nil, false
	}
	return v, true
}

func intField(raw map[string]json.RawMessage, name string) (int, *types.FieldError) {
	v, ok := present(raw, name)
	if !ok {
		return 0, fieldError(name, "field required", "missing")
	}
	n, ok := number(v)
	if !ok {
		return 0, fieldError(name, "input should be a valid integer", "int_type")
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, fieldError(name, "input should be a valid integer, number out of range", "int_overflow")
	}
	if f != math.Trunc(f) {
		return 0, fieldError(name, "input should be a valid integer, got a number with a fractional part", "int_from_float")
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fieldError(name, "input should be a valid integer, number out of range", "int_overflow")
	}
	return int(f), nil
}

func floatField(raw map[string]json.RawMessage, name string) (float64, *types.FieldError) {
	v, ok := present(raw, name)
	if !ok {
		return 0, fieldError(name, "field required", "missing")
	}
	n, ok := number(v)
	if !ok {
		return 0, fieldError(name, "input should be a valid number", "float_type")
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) {
		return 0, fieldError(name, "input should be a finite number", "finite_number")
	}
	return f, nil
}
