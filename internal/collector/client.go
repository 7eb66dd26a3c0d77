package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sohd/pkg/types"
)

// Kind classifies a submission outcome.
type Kind string

const (
	KindSuccess        Kind = "success"
	KindServiceError   Kind = "service_error"
	KindTransportError Kind = "transport_error"
)

// ConnectivityHint is shown with every transport failure.
const ConnectivityHint = "Make sure the prediction service is running and reachable from this host (check the service URL and the container network)."

// maxRawBody bounds how much of an unexpected response is kept for display.
const maxRawBody = 64 << 10

// Result is the outcome of one submission.
type Result struct {
	Kind Kind
	// Payload is exactly what was sent.
	Payload types.PredictRequest
	// PredictedSoH is set for KindSuccess.
	PredictedSoH float64
	// StatusCode and RawBody are set when the service answered.
	StatusCode int
	RawBody    string
	// Message is a human readable summary for the error kinds.
	Message string
	Err     error
}

var submissionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "sohd",
		Subsystem: "collector",
		Name:      "submissions_total",
		Help:      "Collector submissions by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(submissionsTotal)
}

// Client submits prediction requests to the inference service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the service at baseURL. Every call is bounded
// by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Submit sends one prediction request. It never returns an error; failures are
// described by the Result.
func (c *Client) Submit(ctx context.Context, req types.PredictRequest) Result {
	res := c.submit(ctx, req)
	submissionsTotal.WithLabelValues(string(res.Kind)).Inc()
	return res
}

func (c *Client) submit(ctx context.Context, req types.PredictRequest) Result {
	res := Result{Payload: req}
	body, err := json.Marshal(req)
	if err != nil {
		return serviceError(res, fmt.Sprintf("encode request: %v", err))
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return transportError(res, err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(hreq)
	if err != nil {
		return transportError(res, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRawBody))
	if err != nil {
		return transportError(res, err)
	}
	res.StatusCode = resp.StatusCode
	res.RawBody = string(raw)

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("the service returned status %d", resp.StatusCode)
		var e types.ErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg += ": " + e.Error
		}
		return serviceError(res, msg)
	}
	var out struct {
		PredictedSoH *float64 `json:"predicted_soh"`
		Error        string   `json:"error"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return serviceError(res, "the service response is not valid JSON")
	}
	if out.Error != "" {
		return serviceError(res, out.Error)
	}
	if out.PredictedSoH == nil {
		return serviceError(res, "the service response has no predicted_soh")
	}
	res.Kind = KindSuccess
	res.PredictedSoH = *out.PredictedSoH
	return res
}

func serviceError(res Result, msg string) Result {
	res.Kind = KindServiceError
	res.Message = msg
	return res
}

func transportError(res Result, err error) Result {
	res.Kind = KindTransportError
	res.Err = err
	res.Message = "could not connect to the prediction service: " + err.Error()
	return res
}

// Health fetches GET / from the service.
func (c *Client) Health(ctx context.Context) (types.HealthResponse, error) {
	var h types.HealthResponse
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return h, err
	}
	resp, err := c.http.Do(hreq)
	if err != nil {
		return h, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return h, fmt.Errorf("health: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRawBody)).Decode(&h); err != nil {
		return h, fmt.Errorf("health: %w", err)
	}
	return h, nil
}
