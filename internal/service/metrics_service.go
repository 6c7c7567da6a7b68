package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry and the workflow counters.
// A nil receiver is a no-op so services can run without metrics in tests.
type MetricsService struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	requisitionsSubmitted prometheus.Counter
	approvalDecisions     *prometheus.CounterVec
	attachmentUploads     *prometheus.CounterVec
}

// NewMetricsService constructs and registers all collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "path", "status"}),
		requisitionsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "requisitions_submitted_total",
			Help: "Purchase requisitions submitted to the approval queue.",
		}),
		approvalDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Approve and deny decisions recorded.",
		}, []string{"decision"}),
		attachmentUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attachment_uploads_total",
			Help: "Attachment uploads by terminal status.",
		}, []string{"status"}),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.requisitionsSubmitted,
		m.approvalDecisions,
		m.attachmentUploads,
	)
	return m
}

// ObserveHTTPRequest records one handled request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, label).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, label).Inc()
}

// IncSubmission counts a successful requisition submission.
func (m *MetricsService) IncSubmission() {
	if m == nil {
		return
	}
	m.requisitionsSubmitted.Inc()
}

// IncApprovalDecision counts an approve or deny decision.
func (m *MetricsService) IncApprovalDecision(decision string) {
	if m == nil {
		return
	}
	m.approvalDecisions.WithLabelValues(decision).Inc()
}

// IncAttachmentUpload counts an attachment upload reaching a terminal state.
func (m *MetricsService) IncAttachmentUpload(status string) {
	if m == nil {
		return
	}
	m.attachmentUploads.WithLabelValues(status).Inc()
}

// Handler exposes the registry for the /metrics endpoint.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
