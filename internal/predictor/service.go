package predictor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"sohd/internal/artifact"
	"sohd/pkg/types"
)

// StatusRunning is the health status string reported by GET /.
const StatusRunning = "API is running"

// Predictor is the capability the service needs from a loaded artifact pair.
type Predictor interface {
	Predict(row []float64) (float64, error)
}

// Service answers health and prediction calls. It is read-only after
// construction and safe for concurrent use.
type Service struct {
	pred      Predictor
	loadErr   error
	startTime time.Time
}

// New constructs a Service around pred. A nil pred puts the service in
// degraded mode; loadErr records why.
func New(pred Predictor, loadErr error) *Service {
	s := &Service{loadErr: loadErr, startTime: time.Now()}
	// avoid storing a typed nil *artifact.Pair behind the interface
	if p, ok := pred.(*artifact.Pair); !ok || p != nil {
		s.pred = pred
	}
	if s.pred != nil {
		modelLoaded.Set(1)
	} else {
		modelLoaded.Set(0)
	}
	return s
}

// Load reads the artifact pair and never fails: on error it logs and returns a
// degraded Service.
func Load(scalerPath, modelPath string, log zerolog.Logger) *Service {
	start := time.Now()
	pair, err := artifact.LoadPair(scalerPath, modelPath)
	if err != nil {
		log.Error().Err(err).Str("scaler", scalerPath).Str("model", modelPath).Msg("artifacts not loaded; serving in degraded mode")
		return New(nil, err)
	}
	log.Info().Str("scaler", scalerPath).Str("model", modelPath).Dur("took", time.Since(start)).Msg("artifacts loaded")
	return New(pair, nil)
}

// Ready reports whether predictions can be served.
func (s *Service) Ready() bool { return s.pred != nil }

// LoadError returns the startup failure, if any.
func (s *Service) LoadError() error { return s.loadErr }

// Uptime returns the time since construction.
func (s *Service) Uptime() time.Duration { return time.Since(s.startTime) }

// Health never fails.
func (s *Service) Health() types.HealthResponse {
	return types.HealthResponse{Status: StatusRunning, ModelLoaded: s.Ready()}
}

// Predict scales the request's feature row, runs the model and rounds the
// first output to 2 decimals. Rounding is applied only here.
func (s *Service) Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error) {
	if s.pred == nil {
		predictionsTotal.WithLabelValues("unavailable").Inc()
		return types.PredictResponse{}, ErrModelUnavailable(UnavailableMessage)
	}
	if err := ctx.Err(); err != nil {
		return types.PredictResponse{}, err
	}
	v, err := s.pred.Predict(req.Row())
	if err != nil {
		predictionsTotal.WithLabelValues("error").Inc()
		return types.PredictResponse{}, fmt.Errorf("predict: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		predictionsTotal.WithLabelValues("error").Inc()
		return types.PredictResponse{}, invalidOutputError{msg: fmt.Sprint(v)}
	}
	predictionsTotal.WithLabelValues("ok").Inc()
	return types.PredictResponse{PredictedSoH: round2(v)}, nil
}
