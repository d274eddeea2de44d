// Package metrics exposes the service's prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CompletionsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Name:      "completions_recorded_total",
		Help:      "Number of workout completions recorded.",
	})

	AdviceFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Name:      "advice_fallbacks_total",
		Help:      "Number of advice requests answered with the static fallback.",
	})

	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Name:      "reminders_sent_total",
		Help:      "Number of reminder messages delivered.",
	})
)

func init() {
	prometheus.MustRegister(CompletionsRecorded, AdviceFallbacks, RemindersSent)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
