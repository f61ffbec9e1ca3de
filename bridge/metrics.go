package bridge

import (
	"strconv"
	"time"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/lainio/err2"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vcx"

type metrics struct {
	reg prometheus.Registerer

	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
	dropped  prometheus.Counter
	objects  *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) (m *metrics, err error) {
	defer err2.Handle(&err, "metrics")

	m = &metrics{
		reg: reg,

		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "calls_total",
			Help:      "Completed bridge operations by the result code.",
		}, []string{"op", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "call_duration_seconds",
			Help:      "Time from the call to the callback.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"op"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "inflight",
			Help:      "Operations waiting for their callback.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bridge",
			Name:      "dropped_completions_total",
			Help:      "Completions after the callback was already called.",
		}),
		objects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects",
			Help:      "Live objects per kind.",
		}, []string{"kind"}),
	}
	cs := m.collectors()
	for i, c := range cs {
		if err := reg.Register(c); err != nil {
			for _, r := range cs[:i] {
				reg.Unregister(r)
			}
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.calls, m.duration, m.inflight, m.dropped, m.objects}
}

// unregister lets a new bridge register to the same registerer.
func (m *metrics) unregister() {
	for _, c := range m.collectors() {
		m.reg.Unregister(c)
	}
}

func (m *metrics) call(op string, code errcode.Code, d time.Duration) {
	m.calls.WithLabelValues(op, strconv.FormatUint(uint64(code), 10)).Inc()
	if d > 0 {
		m.duration.WithLabelValues(op).Observe(d.Seconds())
	}
}
