// This file contains the observability middleware: Prometheus request
// metrics and a structured request log with per-request IDs.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var (
	requestCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moodtunes_http_requests_total",
		Help: "HTTP requests served, by path, method and status code.",
	}, []string{"path", "method", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moodtunes_http_request_duration_seconds",
		Help:    "HTTP request latency. Chat requests include upstream model calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)

func init() {
	prometheus.MustRegister(requestCount, requestDuration)
}

// metricPaths are the routes that get their own metric series. Anything else
// collapses into one label value so arbitrary request paths cannot mint
// unbounded series.
var metricPaths = map[string]bool{
	"/api/chat":             true,
	"/api/moodtunes-chat":   true,
	"/api/spotify-auth":     true,
	"/api/spotify-callback": true,
	"/metrics":              true,
}

func metricPath(p string) string {
	if metricPaths[p] {
		return p
	}
	return "other"
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument records request metrics and writes a structured log line per
// request. Each request gets a generated ID so upstream-call log entries can
// be correlated with the access log.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		path := metricPath(r.URL.Path)
		requestCount.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
		log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   elapsed.String(),
		}).Info("request")
	})
}
