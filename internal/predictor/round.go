package predictor

import (
	"strconv"
)

// round2 rounds v to 2 decimal digits using correctly rounded decimal
// conversion, so values like 2.675 (stored as 2.67499...) round down.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
