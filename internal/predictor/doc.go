// Package predictor holds the loaded artifact pair and answers health and
// prediction calls for the HTTP layer.
//
//   - service.go: Service, construction from artifact files, Health, Predict.
//   - errors.go: error types and helpers (IsModelUnavailable, IsInvalidOutput).
//   - round.go: output rounding.
//   - metrics.go: prediction counters and the model-loaded gauge.
//
// A Service is immutable after construction. When the artifacts fail to load it
// runs in degraded mode: Health reports model_loaded=false and Predict returns
// a model-unavailable error instead of a value.
package predictor
