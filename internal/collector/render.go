package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// PayloadJSON is the request body exactly as sent.
func (r Result) PayloadJSON() string {
	b, err := json.Marshal(r.Payload)
	if err != nil {
		return ""
	}
	return string(b)
}

// SoHText formats the prediction for display.
func (r Result) SoHText() string {
	return strconv.FormatFloat(r.PredictedSoH, 'f', -1, 64) + " %"
}

// Render writes a plain-text report of r, used by the CLI.
func (r Result) Render(w io.Writer) error {
	var err error
	p := func(format string, a ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, a...)
		}
	}
	p("sent: %s\n", r.PayloadJSON())
	switch r.Kind {
	case KindSuccess:
		p("predicted battery state of health: %s\n", r.SoHText())
	case KindServiceError:
		p("error: %s\n", r.Message)
		if r.StatusCode != 0 {
			p("status: %d\n", r.StatusCode)
		}
		if r.RawBody != "" {
			p("body: %s\n", r.RawBody)
		}
	case KindTransportError:
		p("error: %s\n", r.Message)
		p("hint: %s\n", ConnectivityHint)
	}
	return err
}
