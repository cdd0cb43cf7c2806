package app

import (
	"time"

	"github.com/iov-one/nexus"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts delivered messages and observes how
// long handlers take.
type Metrics struct {
	delivered *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

var _ nexus.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer. It panics if the collectors are already registered.
func NewMetrics(reg prometheus.Registerer) Metrics {
	m := Metrics{
		delivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nexus",
				Subsystem: "app",
				Name:      "delivered_total",
				Help:      "Number of delivered messages per path and result.",
			},
			[]string{"path", "result"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nexus",
				Subsystem: "app",
				Name:      "deliver_duration_seconds",
				Help:      "Time spent in the handler per path.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"path"},
		),
	}
	reg.MustRegister(m.delivered, m.latency)
	return m
}

// Deliver counts the message once the handler returned.
func (m Metrics) Deliver(ctx nexus.Context, store nexus.KVStore, msg nexus.Msg, next nexus.Handler) (*nexus.Result, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, msg)
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.delivered.WithLabelValues(msg.Path(), result).Inc()
	m.latency.WithLabelValues(msg.Path()).Observe(time.Since(start).Seconds())
	return res, err
}
