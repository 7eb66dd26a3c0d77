package collector

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"sohd/pkg/types"
)

// Field describes one form input and its advisory bounds.
type Field struct {
	Name    string
	Label   string
	Help    string
	Min     float64
	Max     float64
	Default float64
	Integer bool
	// Decimals shown in the form; 0 for integers.
	Decimals int
}

// Fields are the collector inputs in request order.
var Fields = []Field{
	{
		Name:    "cycle",
		Label:   "Cycle count",
		Help:    "Total number of charge/discharge cycles the battery has completed.",
		Min:     1,
		Max:     2000,
		Default: 150,
		Integer: true,
	},
	{
		Name:     "avg_temp_discharge_smoothed",
		Label:    "Average discharge temperature (°C)",
		Help:     "Average battery temperature during the last discharge.",
		Min:      10.0,
		Max:      60.0,
		Default:  35.0,
		Decimals: 2,
	},
	{
		Name:     "internal_resistance_smoothed",
		Label:    "Internal resistance (ohm)",
		Help:     "Most recently measured internal resistance of the battery.",
		Min:      0.0010,
		Max:      0.0500,
		Default:  0.0180,
		Decimals: 4,
	},
}

// Format renders v the way the form displays it.
func (f Field) Format(v float64) string {
	if f.Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', f.Decimals, 64)
}

// Step is the HTML input step for the field.
func (f Field) Step() string {
	if f.Integer {
		return "1"
	}
	return "0." + strings.Repeat("0", f.Decimals-1) + "1"
}

// Issue is a form value the collector refuses to submit.
type Issue struct {
	Field string
	Msg   string
}

func (i Issue) String() string { return i.Field + ": " + i.Msg }

// DefaultRequest returns the form defaults as a request.
func DefaultRequest() types.PredictRequest {
	return types.PredictRequest{
		Cycle:                      int(Fields[0].Default),
		AvgTempDischargeSmoothed:   Fields[1].Default,
		InternalResistanceSmoothed: Fields[2].Default,
	}
}

// Validate checks req against the advisory bounds. Values on a bound are
// accepted.
func Validate(req types.PredictRequest) []Issue {
	vals := []float64{float64(req.Cycle), req.AvgTempDischargeSmoothed, req.InternalResistanceSmoothed}
	var issues []Issue
	for i, f := range Fields {
		if v := vals[i]; !(v >= f.Min && v <= f.Max) {
			issues = append(issues, Issue{Field: f.Name, Msg: fmt.Sprintf("must be between %s and %s", f.Format(f.Min), f.Format(f.Max))})
		}
	}
	return issues
}

// ParseForm reads the three fields from form values. Missing values take the
// field default. Parse and bound failures are reported together.
func ParseForm(form url.Values) (types.PredictRequest, []Issue) {
	req := DefaultRequest()
	var issues []Issue
	for _, f := range Fields {
		raw := strings.TrimSpace(form.Get(f.Name))
		if raw == "" {
			continue
		}
		if f.Integer {
			n, err := strconv.Atoi(raw)
			if err != nil {
				issues = append(issues, Issue{Field: f.Name, Msg: "must be a whole number"})
				continue
			}
			req.Cycle = n
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			issues = append(issues, Issue{Field: f.Name, Msg: "must be a number"})
			continue
		}
		switch f.Name {
		case "avg_temp_discharge_smoothed":
			req.AvgTempDischargeSmoothed = v
		case "internal_resistance_smoothed":
			req.InternalResistanceSmoothed = v
		}
	}
	if len(issues) > 0 {
		return req, issues
	}
	return req, Validate(req)
}
