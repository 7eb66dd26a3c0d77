package predictor

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sohd",
			Subsystem: "predictor",
			Name:      "predictions_total",
			Help:      "Prediction calls by result",
		},
		[]string{"result"},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sohd",
			Subsystem: "predictor",
			Name:      "model_loaded",
			Help:      "1 when the scaler and model loaded at startup, 0 in degraded mode",
		},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, modelLoaded)
}
