package collector

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sohd/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.New("form.html").ParseFS(templateFS, "templates/form.html"))

// healthTimeout bounds the banner lookup so a slow service never delays the form.
const healthTimeout = 2 * time.Second

// Submitter is the service contract the UI depends on.
type Submitter interface {
	Submit(ctx context.Context, req types.PredictRequest) Result
	Health(ctx context.Context) (types.HealthResponse, error)
	BaseURL() string
}

type formField struct {
	Field
	Value string
	Issue string
}

type pageData struct {
	ServiceURL string
	Health     *types.HealthResponse
	HealthErr  string
	Fields     []formField
	Issues     []Issue
	Result     *Result
	Hint       string
}

// UI serves the operator form.
type UI struct {
	svc Submitter
	log zerolog.Logger
}

// NewUI returns the collector web handler.
func NewUI(svc Submitter, log zerolog.Logger) http.Handler {
	u := &UI{svc: svc, log: log}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/", u.form)
	r.Post("/", u.submit)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}

func (u *UI) form(w http.ResponseWriter, r *http.Request) {
	req := DefaultRequest()
	u.render(w, r, u.page(r.Context(), req, nil, nil))
}

func (u *UI) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	req, issues := ParseForm(r.PostForm)
	if len(issues) > 0 {
		u.log.Info().Int("issues", len(issues)).Msg("form rejected")
		u.render(w, r, u.page(r.Context(), req, issues, nil))
		return
	}
	start := time.Now()
	res := u.svc.Submit(r.Context(), req)
	ev := u.log.Info()
	if res.Kind != KindSuccess {
		ev = u.log.Warn().Err(res.Err).Str("detail", res.Message)
	}
	ev.Str("outcome", string(res.Kind)).Int("status", res.StatusCode).Dur("dur", time.Since(start)).Msg("submission")
	u.render(w, r, u.page(r.Context(), req, nil, &res))
}

func (u *UI) page(ctx context.Context, req types.PredictRequest, issues []Issue, res *Result) pageData {
	d := pageData{ServiceURL: u.svc.BaseURL(), Issues: issues, Result: res, Hint: ConnectivityHint}
	hctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if h, err := u.svc.Health(hctx); err != nil {
		d.HealthErr = err.Error()
	} else {
		d.Health = &h
	}
	vals := []float64{float64(req.Cycle), req.AvgTempDischargeSmoothed, req.InternalResistanceSmoothed}
	byField := make(map[string]string, len(issues))
	for _, is := range issues {
		byField[is.Field] = is.Msg
	}
	for i, f := range Fields {
		d.Fields = append(d.Fields, formField{Field: f, Value: f.Format(vals[i]), Issue: byField[f.Name]})
	}
	return d
}

func (u *UI) render(w http.ResponseWriter, r *http.Request, d pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, d); err != nil {
		u.log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("render form")
	}
}
