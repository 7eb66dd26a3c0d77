// Package artifact decodes the fitted feature scaler and regression model that
// back SoH predictions.
//
// The training pipeline exports both objects as plain parameter documents
// (JSON, YAML or TOML, chosen by file extension). A Pair is loaded once at
// process start and is read-only afterwards, so it may be shared by any number
// of goroutines without synchronization.
//
// Column order is fixed: cycle, avg_temp_discharge_smoothed,
// internal_resistance_smoothed. Documents that declare feature_names must
// list exactly these names in this order.
package artifact
