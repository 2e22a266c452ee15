package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is an explicit handle around its own registry; nothing here
// touches the global prometheus state.
type Metrics struct {
	registry *prometheus.Registry

	drawsTotal         *prometheus.CounterVec
	ticketsIssued      prometheus.Counter
	notificationsTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		drawsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "santa_draws_total",
			Help: "Draw attempts by outcome.",
		}, []string{"outcome"}),
		ticketsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "santa_tickets_issued_total",
			Help: "Tickets created by committed draws.",
		}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "santa_notifications_total",
			Help: "Notification dispatch attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	registry.MustRegister(m.drawsTotal, m.ticketsIssued, m.notificationsTotal)
	return m
}

func (m *Metrics) DrawCompleted(ticketCount int) {
	m.drawsTotal.WithLabelValues("completed").Inc()
	m.ticketsIssued.Add(float64(ticketCount))
}

func (m *Metrics) DrawFailed() {
	m.drawsTotal.WithLabelValues("failed").Inc()
}

func (m *Metrics) NotificationSent(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.notificationsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
