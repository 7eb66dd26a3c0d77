package collector

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sohd/pkg/types"
)

func newService(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmit_Success(t *testing.T) {
	var got types.PredictRequest
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type=%q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"predicted_soh":91.27}`)
	})
	c := NewClient(srv.URL+"/", time.Second)
	res := c.Submit(context.Background(), DefaultRequest())
	if res.Kind != KindSuccess || res.PredictedSoH != 91.27 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got != DefaultRequest() {
		t.Fatalf("service received %+v", got)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
}

func TestSubmit_BoundaryCyclesUnchanged(t *testing.T) {
	var got types.PredictRequest
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		io.WriteString(w, `{"predicted_soh":80.02}`)
	})
	c := NewClient(srv.URL, time.Second)
	for _, cycle := range []int{1, 2000} {
		req := DefaultRequest()
		req.Cycle = cycle
		if issues := Validate(req); len(issues) != 0 {
			t.Fatalf("cycle=%d rejected: %v", cycle, issues)
		}
		if res := c.Submit(context.Background(), req); res.Kind != KindSuccess {
			t.Fatalf("cycle=%d: %+v", cycle, res)
		}
		if got.Cycle != cycle {
			t.Fatalf("forwarded cycle=%d, want %d", got.Cycle, cycle)
		}
	}
}

func TestSubmit_ServiceErrors(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		msg    string
	}{
		"non-200":       {http.StatusInternalServerError, `{"error":"boom","code":500}`, "status 500: boom"},
		"validation":    {http.StatusUnprocessableEntity, `{"error":"validation failed","code":422,"detail":[]}`, "status 422"},
		"degraded":      {http.StatusOK, `{"error":"model or scaler could not be loaded; check the server logs"}`, "could not be loaded"},
		"not json":      {http.StatusOK, `<html>proxy error</html>`, "not valid JSON"},
		"no prediction": {http.StatusOK, `{"status":"API is running"}`, "no predicted_soh"},
		"plain 502":     {http.StatusBadGateway, `bad gateway`, "status 502"},
	}
	for name, c := range cases {
		c := c
		srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			io.WriteString(w, c.body)
		})
		res := NewClient(srv.URL, time.Second).Submit(context.Background(), DefaultRequest())
		if res.Kind != KindServiceError {
			t.Fatalf("%s: kind=%s", name, res.Kind)
		}
		if !strings.Contains(res.Message, c.msg) {
			t.Fatalf("%s: message=%q, want substring %q", name, res.Message, c.msg)
		}
		if res.RawBody != c.body || res.StatusCode != c.status {
			t.Fatalf("%s: raw=%q status=%d", name, res.RawBody, res.StatusCode)
		}
	}
}

func TestSubmit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	res := NewClient(url, time.Second).Submit(context.Background(), DefaultRequest())
	if res.Kind != KindTransportError || res.Err == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.Message, "could not connect") {
		t.Fatalf("message=%q", res.Message)
	}
}

func TestSubmit_TimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	start := time.Now()
	res := NewClient(srv.URL, 100*time.Millisecond).Submit(context.Background(), DefaultRequest())
	if res.Kind != KindTransportError {
		t.Fatalf("kind=%s", res.Kind)
	}
	if el := time.Since(start); el > 2*time.Second {
		t.Fatalf("submit took %s, timeout not honored", el)
	}
}

func TestHealth(t *testing.T) {
	srv := newService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"API is running","model_loaded":false}`)
	})
	h, err := NewClient(srv.URL, time.Second).Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if h.ModelLoaded || h.Status != "API is running" {
		t.Fatalf("unexpected health: %+v", h)
	}

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()
	if _, err := NewClient(url, time.Second).Health(context.Background()); err == nil {
		t.Fatalf("expected error for unreachable service")
	}
}
