package observability

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/spec-kit/event-platform"

// Metrics keeps in-memory request and error counters and mirrors them to
// OpenTelemetry instruments from the global meter provider.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64

	requests metric.Int64Counter
	errors   metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewMetrics initializes metrics storage.
func NewMetrics(service string) *Metrics {
	meter := otel.Meter(meterName, metric.WithInstrumentationAttributes(attribute.String("service", service)))
	m := &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
	// instrument creation only fails on invalid names; the counters stay nil then.
	m.requests, _ = meter.Int64Counter("http.server.requests", metric.WithDescription("HTTP requests served"))
	m.errors, _ = meter.Int64Counter("http.server.errors", metric.WithDescription("HTTP requests that failed, by error code"))
	m.latency, _ = meter.Float64Histogram("http.server.duration", metric.WithUnit("s"))
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	m.requestCount[key]++
	m.mu.Unlock()

	attrs := metric.WithAttributes(
		attribute.String("route", path),
		attribute.String("method", method),
		attribute.Int("status", status),
	)
	if m.requests != nil {
		m.requests.Add(context.Background(), 1, attrs)
	}
	if m.latency != nil {
		m.latency.Record(context.Background(), duration.Seconds(), attrs)
	}
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	m.errorCount[key]++
	m.mu.Unlock()

	if m.errors != nil {
		m.errors.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("route", path),
			attribute.String("method", method),
			attribute.String("code", code),
		))
	}
}

// Snapshot returns copies of the request and error counters.
func (m *Metrics) Snapshot() (requests, errors map[string]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests = make(map[string]int64, len(m.requestCount))
	for k, v := range m.requestCount {
		requests[k] = v
	}
	errors = make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return requests, errors
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
