// Package collector gathers the three battery features from an operator,
// submits them to the inference service and renders the outcome.
//
// One submission is one POST /predict with a bounded timeout; there are no
// retries and no cached results. Every outcome, including an unreachable
// service, is returned as a Result value rather than an error so callers can
// always render something.
package collector
