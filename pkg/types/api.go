package types

// PredictRequest is the body of POST /predict. Field names and order match the
// columns the scaler and model were fitted on.
type PredictRequest struct {
	// Completed charge/discharge cycles.
	// example: 150
	Cycle int `json:"cycle" example:"150"`
	// Smoothed average battery temperature during discharge, in °C.
	// example: 35.0
	AvgTempDischargeSmoothed float64 `json:"avg_temp_discharge_smoothed" example:"35.0"`
	// Smoothed internal resistance, in ohms.
	// example: 0.018
	InternalResistanceSmoothed float64 `json:"internal_resistance_smoothed" example:"0.018"`
}

// Row returns the request as a feature row in training column order.
func (r PredictRequest) Row() []float64 {
	return []float64{float64(r.Cycle), r.AvgTempDischargeSmoothed, r.InternalResistanceSmoothed}
}

// PredictResponse is returned by POST /predict when the model is loaded.
type PredictResponse struct {
	// Predicted state of health in percent, rounded to 2 decimals.
	// example: 91.27
	PredictedSoH float64 `json:"predicted_soh" example:"91.27"`
}

// HealthResponse is returned by GET /.
type HealthResponse struct {
	// Human readable service status.
	// example: API is running
	Status string `json:"status" example:"API is running"`
	// Whether the scaler and model were loaded at startup.
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
}

// UnavailableResponse is the soft-failure body of POST /predict in degraded mode.
type UnavailableResponse struct {
	// example: model or scaler could not be loaded; check the server logs
	Error string `json:"error" example:"model or scaler could not be loaded; check the server logs"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	// Location of the field, e.g. ["body","cycle"].
	Loc []string `json:"loc"`
	// example: field required
	Msg string `json:"msg" example:"field required"`
	// example: missing
	Type string `json:"type" example:"missing"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
	// Per-field validation failures, if any.
	Detail []FieldError `json:"detail,omitempty"`
}
