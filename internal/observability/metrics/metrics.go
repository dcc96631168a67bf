// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Metrics holds the ledger and reporting instruments.
type Metrics struct {
	ReceivablesCreated   prometheus.Counter
	TransactionsRecorded *prometheus.CounterVec
	TransactionsReversed prometheus.Counter
	ReportsGenerated     *prometheus.CounterVec
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		ReceivablesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clubledger",
			Name:      "receivables_created_total",
			Help:      "Receivables created.",
		}),
		TransactionsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubledger",
			Name:      "ar_transactions_recorded_total",
			Help:      "Payment transactions recorded, by method.",
		}, []string{"method"}),
		TransactionsReversed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clubledger",
			Name:      "ar_transactions_reversed_total",
			Help:      "Payment transactions reversed.",
		}),
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clubledger",
			Name:      "reports_generated_total",
			Help:      "Reports generated, by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.ReceivablesCreated,
		m.TransactionsRecorded,
		m.TransactionsReversed,
		m.ReportsGenerated,
	)
	return m
}

// RecordTransaction increments the per-method transaction counter.
func (m *Metrics) RecordTransaction(method string) {
	if m == nil {
		return
	}
	m.TransactionsRecorded.WithLabelValues(method).Inc()
}

// RecordReport increments the per-kind report counter.
func (m *Metrics) RecordReport(kind string) {
	if m == nil {
		return
	}
	m.ReportsGenerated.WithLabelValues(kind).Inc()
}

// Module wires the prometheus registry and instruments.
var Module = fx.Module("observability.metrics",
	fx.Provide(NewRegistry),
	fx.Provide(New),
)
