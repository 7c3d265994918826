package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const namespace = "resizer"

type Instance struct {
	totalRequests          *prometheus.CounterVec
	currentRequests        prometheus.Gauge
	requestDurationSeconds prometheus.Histogram

	fetchDurationSeconds     prometheus.Histogram
	transformDurationSeconds prometheus.Histogram

	totalBytes   *prometheus.CounterVec
	totalOptions *prometheus.CounterVec
}

func New(labels prometheus.Labels) *Instance {
	return &Instance{
		totalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "requests_total",
			Help:        "The total number of resize requests by outcome",
			ConstLabels: labels,
		}, []string{"state"}),
		currentRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "current_requests",
			Help:        "The current number of resize requests",
			ConstLabels: labels,
		}),
		requestDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "request_duration_seconds",
			Help:        "The seconds spent serving resize requests",
			ConstLabels: labels,
		}),
		fetchDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "fetch_duration_seconds",
			Help:        "The seconds spent fetching source images",
			ConstLabels: labels,
		}),
		transformDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "transform_duration_seconds",
			Help:        "The seconds spent transforming images",
			ConstLabels: labels,
		}),
		totalBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bytes_total",
			Help:        "The total number of image bytes fetched and served",
			ConstLabels: labels,
		}, []string{"direction"}),
		totalOptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "options_total",
			Help:        "The total number of requests per resize option",
			ConstLabels: labels,
		}, []string{"option"}),
	}
}

func (m *Instance) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.totalRequests,
		m.currentRequests,
		m.requestDurationSeconds,
		m.fetchDurationSeconds,
		m.transformDurationSeconds,
		m.totalBytes,
		m.totalOptions,
	)
}

// StartRequest returns a func to be called with the failure kind once the
// request is done; an empty kind means success.
func (m *Instance) StartRequest() func(kind string) {
	start := time.Now()
	m.currentRequests.Inc()

	return func(kind string) {
		if kind == "" {
			kind = "successful"
		}
		m.totalRequests.WithLabelValues(kind).Inc()
		m.currentRequests.Dec()
		m.requestDurationSeconds.Observe(time.Since(start).Seconds())
	}
}

func (m *Instance) Fetch() func() {
	start := time.Now()

	return func() {
		m.fetchDurationSeconds.Observe(time.Since(start).Seconds())
	}
}

func (m *Instance) Transform() func() {
	start := time.Now()

	return func() {
		m.transformDurationSeconds.Observe(time.Since(start).Seconds())
	}
}

func (m *Instance) BytesFetched(n int) {
	m.totalBytes.WithLabelValues("fetched").Add(float64(n))
}

func (m *Instance) BytesServed(n int) {
	m.totalBytes.WithLabelValues("served").Add(float64(n))
}

func (m *Instance) Option(option string) {
	m.totalOptions.WithLabelValues(option).Inc()
}
