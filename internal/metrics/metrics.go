// Package metrics exposes Prometheus counters for the dev server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecorderInterface is what handlers use to record events
type RecorderInterface interface {
	RecordLogin(success bool)
	RecordRegistration(success bool)
	RecordTokenValidation(success bool)
	RecordTransactionCreated(transactionType string)
	RecordSummaryRequest()
}

// Recorder implements RecorderInterface backed by Prometheus
type Recorder struct {
	authEvents          *prometheus.CounterVec
	transactionsCreated *prometheus.CounterVec
	summaryRequests     prometheus.Counter
}

// NewRecorder registers the counters with the given registerer
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		authEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "result"},
		),
		transactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_created_total",
				Help: "Total number of transactions created",
			},
			[]string{"type"},
		),
		summaryRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "summary_requests_total",
				Help: "Total number of dashboard summary requests",
			},
		),
	}
}

func (r *Recorder) RecordLogin(success bool) {
	r.authEvents.WithLabelValues("login", resultLabel(success)).Inc()
}

func (r *Recorder) RecordRegistration(success bool) {
	r.authEvents.WithLabelValues("register", resultLabel(success)).Inc()
}

func (r *Recorder) RecordTokenValidation(success bool) {
	r.authEvents.WithLabelValues("validate", resultLabel(success)).Inc()
}

func (r *Recorder) RecordTransactionCreated(transactionType string) {
	r.transactionsCreated.WithLabelValues(transactionType).Inc()
}

func (r *Recorder) RecordSummaryRequest() {
	r.summaryRequests.Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// NoopRecorder discards all events; used in tests.
type NoopRecorder struct{}

func (NoopRecorder) RecordLogin(bool)                {}
func (NoopRecorder) RecordRegistration(bool)         {}
func (NoopRecorder) RecordTokenValidation(bool)      {}
func (NoopRecorder) RecordTransactionCreated(string) {}
func (NoopRecorder) RecordSummaryRequest()           {}
