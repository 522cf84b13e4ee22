package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var durationBuckets = []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000}

var registry = newAIRegistry()

type aiRegistry struct {
	mu        sync.Mutex
	requests  map[string]uint64
	failures  map[string]uint64
	durations map[string]*histogram
	responses map[string]uint64
}

func newAIRegistry() *aiRegistry {
	return &aiRegistry{
		requests:  map[string]uint64{},
		failures:  map[string]uint64{},
		durations: map[string]*histogram{},
		responses: map[string]uint64{},
	}
}

// ObserveAI records one model call for a feature (interview, resume, careers).
func ObserveAI(feature string, elapsed time.Duration, err error) {
	if feature == "" {
		feature = "unknown"
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}

	registry.mu.Lock()
	registry.requests[feature]++
	if err != nil {
		registry.failures[feature]++
	}
	h, ok := registry.durations[feature]
	if !ok {
		h = newHistogram(durationBuckets)
		registry.durations[feature] = h
	}
	registry.mu.Unlock()

	h.Observe(ms)
}

// ObserveHTTP counts one finished API response by status class (2xx, 4xx, ...).
func ObserveHTTP(status int) {
	class := "other"
	if status >= 100 && status < 600 {
		class = strconv.Itoa(status/100) + "xx"
	}
	registry.mu.Lock()
	registry.responses[class]++
	registry.mu.Unlock()
}

// Reset clears all recorded values.
func Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.requests = map[string]uint64{}
	registry.failures = map[string]uint64{}
	registry.durations = map[string]*histogram{}
	registry.responses = map[string]uint64{}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	registry.mu.Lock()
	requests := copyCounts(registry.requests)
	failures := copyCounts(registry.failures)
	responses := copyCounts(registry.responses)
	snaps := make(map[string]histogramSnapshot, len(registry.durations))
	for feature, h := range registry.durations {
		snaps[feature] = h.Snapshot()
	}
	registry.mu.Unlock()

	var buf bytes.Buffer
	writeCounter(&buf, "ai_requests_total", "Total model calls by feature", "feature", requests)
	writeCounter(&buf, "ai_failures_total", "Total failed model calls by feature", "feature", failures)
	writeHistogram(&buf, "ai_duration_ms", "Model call duration in milliseconds", snaps)
	writeCounter(&buf, "http_responses_total", "API responses by status class", "class", responses)
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, key := range sortedKeys(values) {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, key, values[key])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snaps map[string]histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for _, feature := range sortedKeys(snaps) {
		snap := snaps[feature]
		var cumulative uint64
		for i, bound := range snap.buckets {
			cumulative += snap.counts[i]
			fmt.Fprintf(buf, "%s_bucket{feature=%q,le=\"%s\"} %d\n", name, feature, formatFloat(bound), cumulative)
		}
		fmt.Fprintf(buf, "%s_bucket{feature=%q,le=\"+Inf\"} %d\n", name, feature, snap.count)
		fmt.Fprintf(buf, "%s_sum{feature=%q} %s\n", name, feature, formatFloat(snap.sum))
		fmt.Fprintf(buf, "%s_count{feature=%q} %d\n", name, feature, snap.count)
	}
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
