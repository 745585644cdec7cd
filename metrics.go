package hazardlist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// prometheusRegisterer is a local alias so option constructors in
// domain.go/list.go don't need to import prometheus directly.
type prometheusRegisterer = prometheus.Registerer

// domainMetrics holds the Prometheus collectors for one Domain. A nil
// registerer yields collectors that are never registered anywhere and
// are safe to call — metrics are an observability concern, never a
// functional one; no operation's return value or behavior depends on
// whether they are enabled.
type domainMetrics struct {
	threadsRegistered prometheus.Gauge
	grows             prometheus.Counter
	inserts           *prometheus.CounterVec
	removes           *prometheus.CounterVec
	removeFirsts      *prometheus.CounterVec
	reclaimed         *prometheus.CounterVec
	retiredPending    *prometheus.GaugeVec
}

func newDomainMetrics(reg prometheus.Registerer) *domainMetrics {
	factory := promauto.With(reg)
	return &domainMetrics{
		threadsRegistered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazardlist",
			Subsystem: "domain",
			Name:      "threads_registered",
			Help:      "Threads currently bound to this domain.",
		}),
		grows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hazardlist",
			Subsystem: "domain",
			Name:      "grows_total",
			Help:      "Successful thread-table growths.",
		}),
		inserts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazardlist",
			Subsystem: "list",
			Name:      "inserts_total",
			Help:      "Successful InsertHead calls.",
		}, []string{"list"}),
		removes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazardlist",
			Subsystem: "list",
			Name:      "removes_total",
			Help:      "Successful logical Remove calls.",
		}, []string{"list"}),
		removeFirsts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazardlist",
			Subsystem: "list",
			Name:      "remove_first_total",
			Help:      "Successful RemoveFirst calls.",
		}, []string{"list"}),
		reclaimed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazardlist",
			Subsystem: "list",
			Name:      "reclaimed_total",
			Help:      "Nodes physically freed by Reclaim.",
		}, []string{"list"}),
		retiredPending: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hazardlist",
			Subsystem: "list",
			Name:      "retired_pending",
			Help:      "Nodes unlinked but awaiting a hazard-clear window.",
		}, []string{"list"}),
	}
}
