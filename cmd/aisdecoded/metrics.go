package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FixedWindowCounter counts events since process start (it has no
// reset), mirroring the teacher's metrics style.
type FixedWindowCounter struct {
	mu    sync.Mutex
	count int64
}

func (c *FixedWindowCounter) AddEvent() {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

func (c *FixedWindowCounter) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

var (
	totalCounter      = &FixedWindowCounter{}
	failureCounter    = &FixedWindowCounter{}
	dedupCounter      = &FixedWindowCounter{}
	unsupportedCounter = &FixedWindowCounter{}
	forwardedCounter  = &FixedWindowCounter{}
)

var (
	promTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aisdecoded_sentences_total",
		Help: "Total AIVDM/AIVDO sentences received.",
	})
	promFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aisdecoded_decode_failures_total",
		Help: "Sentences that failed envelope, frame, or bit decoding.",
	})
	promDedup = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aisdecoded_deduplicated_total",
		Help: "Sentences dropped as duplicates within the dedup window.",
	})
	promUnsupported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aisdecoded_unsupported_type_total",
		Help: "Sentences with a recognized but undecoded message type.",
	})
	promForwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aisdecoded_forwarded_total",
		Help: "Decoded records published to MQTT.",
	})
)

func init() {
	prometheus.MustRegister(promTotal, promFailures, promDedup, promUnsupported, promForwarded)
}

// metricsJSONHandler serves the teacher's hand-rolled JSON summary
// alongside the Prometheus exposition endpoint below.
func metricsJSONHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := struct {
		Total       int64 `json:"total"`
		Failures    int64 `json:"failures"`
		Deduplicated int64 `json:"deduplicated"`
		Unsupported int64 `json:"unsupported"`
		Forwarded   int64 `json:"forwarded"`
	}{
		Total:        totalCounter.Count(),
		Failures:     failureCounter.Count(),
		Deduplicated: dedupCounter.Count(),
		Unsupported:  unsupportedCounter.Count(),
		Forwarded:    forwardedCounter.Count(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func registerMetricsHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/metrics", metricsJSONHandler)
	mux.Handle("/metrics/prometheus", promhttp.Handler())
}
