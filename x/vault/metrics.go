package vault

import (
	"math/big"

	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/x/ratio"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	rebalanceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "vault",
			Name:      "rebalance_total",
			Help:      "Number of rebalance attempts per outcome.",
		},
		[]string{"outcome"},
	)
	splitTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "vault",
			Name:      "split_tokens_total",
			Help:      "Amount of launch rewards split between the pools per stream.",
		},
		[]string{"stream"},
	)
)

func init() {
	prometheus.MustRegister(rebalanceTotal, splitTokens)
}

func observeRebalance(o ratio.Outcome) {
	rebalanceTotal.WithLabelValues(o.String()).Inc()
}

func observeSplit(stream string, amount decimal.Uint) {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	splitTokens.WithLabelValues(stream).Add(f)
}
