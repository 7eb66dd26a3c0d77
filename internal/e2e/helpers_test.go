package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"sohd/internal/httpapi"
	"sohd/internal/predictor"
)

const referencePayload = `{"cycle":150,"avg_temp_discharge_smoothed":35.0,"internal_resistance_smoothed":0.018}`

func fixture(name string) string {
	return filepath.Join("..", "artifact", "testdata", name)
}

// newService starts the HTTP API over the given artifact files.
func newService(t *testing.T, scalerPath, modelPath string) (*httptest.Server, *predictor.Service) {
	t.Helper()
	svc := predictor.Load(scalerPath, modelPath, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, svc
}

func newFixtureService(t *testing.T) *httptest.Server {
	t.Helper()
	srv, svc := newService(t, fixture("scaler.json"), fixture("random_forest_model.json"))
	if !svc.Ready() {
		t.Fatalf("fixture artifacts did not load: %v", svc.LoadError())
	}
	return srv
}

// writeFile drops content into a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
