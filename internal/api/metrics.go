package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intelihire",
		Subsystem: "scoring",
		Name:      "validations_total",
		Help:      "Scoring configurations validated, by outcome.",
	}, []string{"result"})

	configSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intelihire",
		Subsystem: "scoring",
		Name:      "config_saves_total",
		Help:      "Attempts to persist a scoring configuration, by outcome.",
	}, []string{"result"})

	distributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "intelihire",
		Subsystem: "scoring",
		Name:      "distributions_total",
		Help:      "Weight auto-distributions performed.",
	})

	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "intelihire",
		Subsystem: "scoring",
		Name:      "evaluations_total",
		Help:      "Applicant evaluations performed.",
	})
)

func observeValidation(valid bool) {
	if valid {
		validationsTotal.WithLabelValues("valid").Inc()
		return
	}
	validationsTotal.WithLabelValues("invalid").Inc()
}
