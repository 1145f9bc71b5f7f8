package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swoga/tplink-exporter/model"
)

// AddMetricsOutcome registers the scrape health pair. These two appear in
// every exposition, whatever happened to the cycle.
func AddMetricsOutcome(registry prometheus.Registerer, outcome model.ScrapeOutcome) {
	successGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scrape_success",
		Help: "Whether the last scrape was successful (1 = success, 0 = failure)",
	})
	registry.MustRegister(successGauge)
	successGauge.Set(boolValue(outcome.Success))

	durationGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scrape_duration_seconds",
		Help: "Duration of the last scrape in seconds",
	})
	registry.MustRegister(durationGauge)
	durationGauge.Set(outcome.Duration.Seconds())
}
