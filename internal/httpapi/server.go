package httpapi

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sohd/internal/predictor"
	"sohd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Health() types.HealthResponse
	Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error)
	Ready() bool
}

// NewMux builds the inference service router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/", healthHandler(svc))
	r.Post("/predict", predictHandler(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("degraded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if swaggerEnabled {
		MountSwagger(r)
	}
	return r
}

// healthHandler reports whether the artifacts loaded. Always 200.
//
// @Summary      Health check
// @Description  Reports service status and whether the scaler and model loaded at startup.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       / [get]
func healthHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health())
	}
}

// predictHandler validates the body and returns the rounded SoH.
//
// @Summary      Predict battery state of health
// @Description  Scales the three features in training order, runs the model and rounds to 2 decimals.
// @Description  In degraded mode the body is {"error": "..."} with status 200.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        request  body      types.PredictRequest  true  "battery features"
// @Success      200      {object}  types.PredictResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /predict [post]
func predictHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)

		if !jsonContentType(r.Header.Get("Content-Type")) {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be a JSON media type")
			logPredictEnd(r, lvl, http.StatusUnsupportedMediaType, start, errors.New("unsupported media type"))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			// report oversize bodies as plain bad requests
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			logPredictEnd(r, lvl, http.StatusBadRequest, start, err)
			return
		}
		req, detail, err := decodePredictRequest(body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			logPredictEnd(r, lvl, http.StatusBadRequest, start, err)
			return
		}
		if len(detail) > 0 {
			incValidationFailures(detail)
			writeValidationError(w, detail)
			logPredictEnd(r, lvl, http.StatusUnprocessableEntity, start, errors.New("validation failed"))
			return
		}
		if lvl >= LevelDebug {
			zlog.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Int("cycle", req.Cycle).
				Float64("avg_temp_discharge_smoothed", req.AvgTempDischargeSmoothed).
				Float64("internal_resistance_smoothed", req.InternalResistanceSmoothed).
				Msg("predict start")
		}

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Predict(ctx, req)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusFor(err)
			if predictor.IsModelUnavailable(err) {
				// soft failure: callers parse the body, not the status
				writeJSON(w, http.StatusOK, types.UnavailableResponse{Error: err.Error()})
			} else {
				writeJSONError(w, status, err.Error())
			}
			logPredictEnd(r, lvl, status, start, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		logPredictEnd(r, lvl, http.StatusOK, start, nil)
	}
}

// jsonContentType accepts a missing header, application/json and any
// application/*+json media type.
func jsonContentType(ct string) bool {
	if strings.TrimSpace(ct) == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	if mt == "application/json" {
		return true
	}
	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	if predictor.IsModelUnavailable(err) {
		return http.StatusOK
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
