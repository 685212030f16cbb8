package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Flat-file store metrics
	storeReadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_reads_total",
			Help: "Total number of flat-file store reads",
		},
		[]string{"store", "status"},
	)

	storeWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_writes_total",
			Help: "Total number of flat-file store writes",
		},
		[]string{"store", "status"},
	)

	rowsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_rows_skipped_total",
			Help: "Total number of malformed rows dropped during load",
		},
		[]string{"store"},
	)

	// Authentication metrics
	authAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		storeReadsTotal,
		storeWritesTotal,
		rowsSkippedTotal,
		authAttemptsTotal,
	)
}

// RecordStoreRead records a store read outcome
func RecordStoreRead(store string, err error) {
	storeReadsTotal.WithLabelValues(store, status(err)).Inc()
}

// RecordStoreWrite records a store write outcome
func RecordStoreWrite(store string, err error) {
	storeWritesTotal.WithLabelValues(store, status(err)).Inc()
}

// RecordRowSkipped records a malformed row dropped during load
func RecordRowSkipped(store string) {
	rowsSkippedTotal.WithLabelValues(store).Inc()
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	if success {
		authAttemptsTotal.WithLabelValues("success").Inc()
	} else {
		authAttemptsTotal.WithLabelValues("failure").Inc()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
