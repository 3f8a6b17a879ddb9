// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "monad_arcade"

var (
	// RPCRetries counts retried RPC calls by operation.
	RPCRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "retries_total",
		Help:      "Total number of retried RPC calls by operation",
	}, []string{"op"})

	// LogsIndexed counts raw logs written by the indexer.
	LogsIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "logs_indexed_total",
		Help:      "Total number of raw logs written by the indexer",
	})

	// IndexedBlock is the last block the indexer finished.
	IndexedBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "last_block",
		Help:      "Last block number processed by the indexer",
	})

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})

	// HTTPDuration observes API latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// FeedSubscribers is the number of connected feed clients.
	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "subscribers",
		Help:      "Current number of live feed subscribers",
	})

	// FeedEvents counts events broadcast on the live feed by event name.
	FeedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "events_total",
		Help:      "Total number of events broadcast to feed subscribers",
	}, []string{"event"})

	// FeedDropped counts subscribers disconnected for falling behind.
	FeedDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "feed",
		Name:      "dropped_subscribers_total",
		Help:      "Total number of slow subscribers dropped from the feed",
	})
)

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack supports WebSocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// Instrument records request count and latency for next under route.
func Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}
