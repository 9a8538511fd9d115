package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report-API Metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Spreadsheet rows by outcome: uploaded, duplicate, missing_image
	IngestRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "ingest_rows_total",
			Help:      "Spreadsheet rows processed by outcome",
		},
		[]string{"outcome"},
	)

	MiniReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "mini_reports_total",
			Help:      "Grading report PDFs processed",
		},
		[]string{"status"},
	)

	// Backup operations: export, import
	BackupOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "backup_operations_total",
			Help:      "Backup exports and imports",
		},
		[]string{"operation", "status"},
	)

	MiniReportsPurgedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "mini_reports_purged_total",
			Help:      "Mini-report folders removed by the retention job",
		},
		[]string{"status"},
	)

	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "storage_operations_total",
			Help:      "Total file store operations",
		},
		[]string{"backend", "operation", "status"},
	)

	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "igi",
			Subsystem: "report_api",
			Name:      "storage_duration_seconds",
			Help:      "File store operation duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"backend", "operation"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordIngestRow records one spreadsheet row outcome
func RecordIngestRow(outcome string) {
	IngestRowsTotal.WithLabelValues(outcome).Inc()
}

// RecordMiniReport records one processed grading PDF
func RecordMiniReport(status string) {
	MiniReportsTotal.WithLabelValues(status).Inc()
}

// RecordBackup records a backup export or import
func RecordBackup(operation, status string) {
	BackupOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCleanup records one retention run and the folders it removed
func RecordCleanup(status string, removed int) {
	MiniReportsPurgedTotal.WithLabelValues(status).Add(float64(removed))
}

// RecordStorageOperation records a file store call
func RecordStorageOperation(backend, operation string, err error, durationSec float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StorageOperationsTotal.WithLabelValues(backend, operation, status).Inc()
	StorageDuration.WithLabelValues(backend, operation).Observe(durationSec)
}

// Status maps an error to a metric status label
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
