package blogdesk

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the App's Prometheus collectors. Each App has its own
// registry so several Apps (e.g. in tests) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	mutations    *prometheus.CounterVec
	generations  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors. blogCount backs the
// blogdesk_blogs gauge.
func NewMetrics(blogCount func() int) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogdesk_store_mutations_total",
				Help: "Successful store mutations by operation",
			},
			[]string{"op"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogdesk_generation_requests_total",
				Help: "Content generation requests by result",
			},
			[]string{"result"},
		),
	}
	m.Registry.MustRegister(
		m.httpRequests,
		m.mutations,
		m.generations,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "blogdesk_blogs",
			Help: "Number of blogs in the store",
		}, func() float64 { return float64(blogCount()) }),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// ObserveRequest counts one HTTP request. path is the route pattern, not the
// raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, status int) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// Mutation counts one successful store mutation ("create", "update", "delete").
func (m *Metrics) Mutation(op string) {
	m.mutations.WithLabelValues(op).Inc()
}

// Generation counts one generation request ("ok", "failed", "rejected").
func (m *Metrics) Generation(result string) {
	m.generations.WithLabelValues(result).Inc()
}
