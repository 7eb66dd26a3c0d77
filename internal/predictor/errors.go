package predictor

// UnavailableMessage is returned to callers while the service is degraded.
const UnavailableMessage = "model or scaler could not be loaded; check the server logs"

// modelUnavailableError signals degraded mode so the HTTP layer can answer
// with a soft {"error": ...} payload.
type modelUnavailableError struct{ msg string }

func (e modelUnavailableError) Error() string { return e.msg }

// ErrModelUnavailable constructs a modelUnavailableError.
func ErrModelUnavailable(msg string) error { return modelUnavailableError{msg: msg} }

// IsModelUnavailable reports whether err indicates degraded mode.
func IsModelUnavailable(err error) bool {
	_, ok := err.(modelUnavailableError)
	return ok
}

// invalidOutputError signals that the model produced a value that cannot be
// reported (NaN or ±Inf).
type invalidOutputError struct{ msg string }

func (e invalidOutputError) Error() string { return "invalid model output: " + e.msg }

// IsInvalidOutput reports whether err indicates a non-finite prediction.
func IsInvalidOutput(err error) bool {
	_, ok := err.(invalidOutputError)
	return ok
}
