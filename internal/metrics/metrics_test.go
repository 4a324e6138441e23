package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveQueryCountsErrorsByKind(t *testing.T) {
	before := testutil.ToFloat64(QueryErrors.WithLabelValues("metrics_test_query", "validation"))

	ObserveQuery("metrics_test_query", time.Now(), "")
	ObserveQuery("metrics_test_query", time.Now(), "validation")

	after := testutil.ToFloat64(QueryErrors.WithLabelValues("metrics_test_query", "validation"))
	if after-before != 1 {
		t.Fatalf("errors delta = %v, want 1", after-before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	RecordCacheLookup("metrics_test_query", "hit")
	RecordCacheLookup("metrics_test_query", "hit")
	if got := testutil.ToFloat64(CacheLookups.WithLabelValues("metrics_test_query", "hit")); got != 2 {
		t.Fatalf("hits = %v, want 2", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("/metrics-test/", 400)
	if got := testutil.ToFloat64(HTTPRequests.WithLabelValues("/metrics-test/", "400")); got != 1 {
		t.Fatalf("requests = %v, want 1", got)
	}
}
