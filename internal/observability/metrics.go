package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	cascadeRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "amble",
		Subsystem: "cascade",
		Name:      "runs_total",
		Help:      "Number of recalculation cascades started.",
	})
	cascadeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "amble",
		Subsystem: "cascade",
		Name:      "failures_total",
		Help:      "Number of recalculation cascades aborted by a store error.",
	})
	lastRecalcGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "amble",
		Subsystem: "cascade",
		Name:      "last_recalculation_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed recalculation.",
	})
)

func init() {
	prometheus.MustRegister(cascadeRuns, cascadeFailures, lastRecalcGauge)
}

// RecordCascadeRun counts a started recalculation cascade
func RecordCascadeRun() {
	cascadeRuns.Inc()
}

// RecordCascadeFailure counts a cascade aborted by a store error
func RecordCascadeFailure() {
	cascadeFailures.Inc()
}

// RecordRecalculation updates the completion watermark gauge
func RecordRecalculation(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastRecalcGauge.Set(float64(ts.Unix()))
}
