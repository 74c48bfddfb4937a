package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesAllSeries(t *testing.T) {
	IncAnalysisStarted()
	IncAnalysisCompleted()
	IncQuotaDenied()
	ObserveAnalysisDurationMs(120)

	out := Render()
	for _, name := range []string{
		"analysis_started_total",
		"analysis_completed_total",
		"analysis_failed_total",
		"quota_denied_total",
		"analysis_duration_ms_bucket",
		"analysis_duration_ms_sum",
		"analysis_duration_ms_count",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in render output:\n%s", name, out)
		}
	}
}

func TestHistogramObserve(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	snap := h.Snapshot()
	if snap.count != 1 || snap.counts[0] != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
