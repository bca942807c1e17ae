package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal      *prometheus.CounterVec
	processDuration   *prometheus.HistogramVec
	processInFlight   prometheus.Gauge
	queueLag          *prometheus.HistogramVec
	pollTicks         *prometheus.CounterVec
	recognitionSource *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sarabun",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sarabun",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sarabun",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sarabun",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document ingestion and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	pollTicks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sarabun",
			Subsystem: "worker",
			Name:      "recognition_poll_ticks_total",
			Help:      "Total recognition status polls.",
		},
		[]string{"service"},
	)
	recognitionSource := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sarabun",
			Subsystem: "worker",
			Name:      "recognition_source_total",
			Help:      "Documents recognized by source: embedded text layer or OCR.",
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, queueLag, pollTicks, recognitionSource)

	return &WorkerMetrics{
		registry:          registry,
		processTotal:      processTotal,
		processDuration:   processDuration,
		processInFlight:   processInFlight,
		queueLag:          queueLag,
		pollTicks:         pollTicks,
		recognitionSource: recognitionSource,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) RecordPollTick(service string) {
	m.pollTicks.WithLabelValues(service).Inc()
}

func (m *WorkerMetrics) RecordRecognitionSource(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.recognitionSource.WithLabelValues(service, source).Inc()
}
