package rewards

import (
	"math/big"

	"github.com/iov-one/nexus/decimal"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	claimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "rewards",
			Name:      "claims_total",
			Help:      "Number of successful claims per pool and delivery route.",
		},
		[]string{"pool", "route"},
	)
	claimedTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "rewards",
			Name:      "claimed_tokens_total",
			Help:      "Amount of reward tokens paid per pool.",
		},
		[]string{"pool"},
	)
)

func init() {
	prometheus.MustRegister(claimsTotal, claimedTokens)
}

func observeClaim(pool string, r route, amount decimal.Uint) {
	claimsTotal.WithLabelValues(pool, r.String()).Inc()
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	claimedTokens.WithLabelValues(pool).Add(f)
}
