package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3", "abc1234", "go1.25")

	got := testutil.ToFloat64(AppInfo.WithLabelValues("1.2.3", "abc1234", "go1.25"))
	if got != 1 {
		t.Errorf("app info gauge = %v, want 1", got)
	}
}

func TestCountersAcceptExpectedLabels(t *testing.T) {
	// Panics here would mean a label-cardinality mismatch.
	for _, status := range []string{"ok", "skipped", "path_format", "unsupported", "decode", "transfer", "internal"} {
		RecordsTotal.WithLabelValues(status).Inc()
	}
	for _, provenance := range []string{"embedded", "decoded", "placeholder", "resized"} {
		ThumbnailsTotal.WithLabelValues("raw", provenance).Inc()
	}
	StrategyAttemptsTotal.WithLabelValues("embedded_scan", "ok").Inc()
	UploadsTotal.WithLabelValues("ok").Inc()
	BatchesTotal.WithLabelValues("200").Inc()

	if got := testutil.ToFloat64(RecordsTotal.WithLabelValues("ok")); got < 1 {
		t.Errorf("records counter = %v, want >= 1", got)
	}
}
