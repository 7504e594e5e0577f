package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics содержит метрики HTTP-операций и публикации событий.
type APIMetrics struct {
	// Счётчики публикации событий по результату
	eventsPublished *prometheus.CounterVec
	eventsFailed    *prometheus.CounterVec

	// Гистограмма времени обработки HTTP-запросов
	requestDuration *prometheus.HistogramVec

	// Gauge для запросов в обработке
	inflightRequests prometheus.Gauge
}

// NewAPIMetrics создаёт новый экземпляр метрик.
func NewAPIMetrics() *APIMetrics {
	return newAPIMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newAPIMetricsWithRegisterer(registerer prometheus.Registerer) *APIMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &APIMetrics{
		eventsPublished: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_events_published_total",
			Help: "Total number of change events delivered to the message bus",
		}, []string{"entity"}),
		eventsFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_events_publish_failures_total",
			Help: "Total number of change events that failed to publish (absorbed)",
		}, []string{"entity"}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orders_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),
		inflightRequests: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orders_http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		}),
	}
}

// RecordEventPublished увеличивает счётчик доставленных событий.
func (m *APIMetrics) RecordEventPublished(entity string) {
	m.eventsPublished.WithLabelValues(entity).Inc()
}

// RecordEventPublishFailure увеличивает счётчик поглощённых сбоев публикации.
func (m *APIMetrics) RecordEventPublishFailure(entity string) {
	m.eventsFailed.WithLabelValues(entity).Inc()
}

// RecordRequest записывает длительность обработанного HTTP-запроса.
func (m *APIMetrics) RecordRequest(method, route, status string, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordRequestStarted увеличивает количество запросов в обработке.
func (m *APIMetrics) RecordRequestStarted() {
	m.inflightRequests.Inc()
}

// RecordRequestFinished уменьшает количество запросов в обработке.
func (m *APIMetrics) RecordRequestFinished() {
	m.inflightRequests.Dec()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
