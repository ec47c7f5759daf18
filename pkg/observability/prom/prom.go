// Package prom reports observability hook events as Prometheus metrics.
//
//	m := prom.New("scenedoc")
//	m.MustRegister(prometheus.DefaultRegisterer)
//	m.Install()
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/scenedoc/pkg/observability"
)

// Metrics holds the collectors fed by the pass, store and HTTP hooks.
type Metrics struct {
	Passes       *prometheus.CounterVec
	PassDuration prometheus.Histogram
	PassRecords  prometheus.Histogram
	Dispatches   *prometheus.CounterVec
	Dedupes      *prometheus.CounterVec
	StoreOps     *prometheus.CounterVec
	StoreBytes   prometheus.Counter
	Requests     *prometheus.CounterVec
	ReqDuration  *prometheus.HistogramVec
}

// New creates the collectors under the given metric namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		Passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Serialization passes by outcome.",
		}, []string{"outcome"}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of serialization passes.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		PassRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_records",
			Help:      "Records produced per successful pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Objects dispatched to a kind serializer.",
		}, []string{"kind"}),
		Dedupes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dedupes_total",
			Help:      "Objects skipped because they were already serialized in the pass.",
		}, []string{"class"}),
		StoreOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Document store operations by backend and result.",
		}, []string{"backend", "result"}),
		StoreBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_written_bytes_total",
			Help:      "Bytes written to document stores.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		ReqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Collectors returns every collector held by m.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Passes, m.PassDuration, m.PassRecords, m.Dispatches, m.Dedupes,
		m.StoreOps, m.StoreBytes, m.Requests, m.ReqDuration,
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Collectors()...)
}

// Install sets m as the global pass, store and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetPassHooks(passHooks{m})
	observability.SetStoreHooks(storeHooks{m})
	observability.SetHTTPHooks(httpHooks{m})
}

type passHooks struct{ m *Metrics }

func (passHooks) OnPassStart(context.Context, string, string) {}

func (h passHooks) OnPassComplete(_ context.Context, _ string, records int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	h.m.Passes.WithLabelValues(outcome).Inc()
	h.m.PassDuration.Observe(d.Seconds())
	if err == nil {
		h.m.PassRecords.Observe(float64(records))
	}
}

func (h passHooks) OnDispatch(_ context.Context, _ string, kind string) {
	h.m.Dispatches.WithLabelValues(kind).Inc()
}

func (h passHooks) OnDedupe(_ context.Context, class string) {
	h.m.Dedupes.WithLabelValues(class).Inc()
}

type storeHooks struct{ m *Metrics }

func (h storeHooks) OnStoreHit(_ context.Context, backend string) {
	h.m.StoreOps.WithLabelValues(backend, "hit").Inc()
}

func (h storeHooks) OnStoreMiss(_ context.Context, backend string) {
	h.m.StoreOps.WithLabelValues(backend, "miss").Inc()
}

func (h storeHooks) OnStoreSet(_ context.Context, backend string, size int) {
	h.m.StoreOps.WithLabelValues(backend, "set").Inc()
	h.m.StoreBytes.Add(float64(size))
}

type httpHooks struct{ m *Metrics }

func (httpHooks) OnRequest(context.Context, string, string) {}

func (h httpHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.m.ReqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PassHooks  = passHooks{}
	_ observability.StoreHooks = storeHooks{}
	_ observability.HTTPHooks  = httpHooks{}
)
