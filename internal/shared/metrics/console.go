package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Console agrupa as métricas do console; os métodos são usados como callbacks
// do cache de queries e do cliente da API
type Console struct {
	CacheLookups *prometheus.CounterVec
	Fetches      *prometheus.CounterVec
	Mutations    *prometheus.CounterVec
	APILatency   *prometheus.HistogramVec
}

func NewConsole(reg prometheus.Registerer) *Console {
	c := &Console{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_query_cache_lookups_total",
			Help: "leituras no cache de queries por resultado (hit/miss)",
		}, []string{"entity", "result"}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_query_fetches_total",
			Help: "buscas no backend disparadas pelo cache",
		}, []string{"entity", "result"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_mutations_total",
			Help: "escritas no backend por entidade/operação",
		}, []string{"entity", "operation", "result"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_api_request_duration_seconds",
			Help:    "latência das chamadas ao backend REST",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
	reg.MustRegister(c.CacheLookups, c.Fetches, c.Mutations, c.APILatency)
	return c
}

func (c *Console) OnHit(entity string)  { c.CacheLookups.WithLabelValues(entity, "hit").Inc() }
func (c *Console) OnMiss(entity string) { c.CacheLookups.WithLabelValues(entity, "miss").Inc() }

func (c *Console) OnFetch(entity string, err error) {
	c.Fetches.WithLabelValues(entity, result(err)).Inc()
}

func (c *Console) OnMutate(entity, op string, err error) {
	c.Mutations.WithLabelValues(entity, op, result(err)).Inc()
}

func (c *Console) OnAPICall(method string, status int, took time.Duration) {
	c.APILatency.WithLabelValues(method, statusClass(status)).Observe(took.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// status 0 = erro de transporte
func statusClass(status int) string {
	switch {
	case status == 0:
		return "transport_error"
	case status < 300:
		return "2xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
