package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentCountsStatus(t *testing.T) {
	h := Instrument("test_route", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("test_route", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("test_route", "418"))
	if after-before != 1 {
		t.Fatalf("expected one request counted, got %v", after-before)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RPCRetries.WithLabelValues("filter_logs").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "monad_arcade_rpc_retries_total") {
		t.Fatalf("metrics output missing rpc retries counter")
	}
}
