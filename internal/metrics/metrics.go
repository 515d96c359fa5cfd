package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event handling metrics
var (
	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_records_total",
			Help: "Total number of event records processed",
		},
		[]string{"status"}, // "ok", "skipped", "path_format", "unsupported", "decode", "transfer", "internal"
	)

	RecordDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_thumbnailer_record_duration_seconds",
			Help:    "End-to-end record processing duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"category"},
	)

	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_batches_total",
			Help: "Total number of event batches by response status",
		},
		[]string{"status_code"},
	)
)

// Thumbnail derivation metrics
var (
	ThumbnailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_thumbnails_total",
			Help: "Total number of thumbnails produced",
		},
		[]string{"category", "provenance"}, // provenance: "embedded", "decoded", "placeholder", "resized"
	)

	ThumbnailBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_thumbnailer_thumbnail_bytes",
			Help:    "Size of produced thumbnails in bytes",
			Buckets: []float64{10 * 1024, 25 * 1024, 50 * 1024, 100 * 1024, 250 * 1024, 500 * 1024, 1024 * 1024},
		},
		[]string{"category"},
	)

	StrategyAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_strategy_attempts_total",
			Help: "Total number of derivation strategy attempts",
		},
		[]string{"strategy", "status"}, // strategy: "embedded_scan", "tiff_decode", "raw_decode", "placeholder"
	)
)

// Storage metrics
var (
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_downloads_total",
			Help: "Total number of source object downloads",
		},
		[]string{"status"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_uploads_total",
			Help: "Total number of thumbnail uploads",
		},
		[]string{"status"},
	)

	TransferDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_thumbnailer_transfer_duration_seconds",
			Help:    "Object transfer duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "download", "upload"
	)
)

// Restore notification metrics
var (
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_thumbnailer_restore_notifications_total",
			Help: "Total number of restore notification emails",
		},
		[]string{"status"},
	)

	ArchiveBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_thumbnailer_restore_archive_bytes",
			Help:    "Size of assembled restore archives in bytes",
			Buckets: []float64{1 << 20, 10 << 20, 50 << 20, 100 << 20, 500 << 20, 1 << 30},
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "photo_thumbnailer_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
