package metrics

import (
	"net/http"

	"RaidKeeper/cwlog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics to track
var (
	AdmissionDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidkeeper_admission_decisions_total",
			Help: "Join attempts by role and result (admitted, or the scope that refused)",
		},
		[]string{"role", "result"},
	)
	ActiveRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "raidkeeper_active_runs",
			Help: "Number of registered runs",
		},
	)
	RevealAnnouncements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidkeeper_reveal_announcements_total",
			Help: "Password reveal announcements by status",
		},
		[]string{"status"},
	)
	StoreSaveSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "raidkeeper_store_save_seconds",
			Help:    "Time taken to write the run map to disk",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// InitMetrics registers the metrics with the default registry
func InitMetrics() {
	prometheus.MustRegister(AdmissionDecisions, ActiveRuns, RevealAnnouncements, StoreSaveSeconds)
}

// ServeMetrics exposes /metrics on addr. Empty addr disables it.
func ServeMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			cwlog.DoLog("Metrics listener stopped: " + err.Error())
		}
	}()
	cwlog.DoLog("Serving metrics on " + addr)
}
