package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cres "github.com/clawnch/ledger/common/result"
)

// Metrics collects the ledger and RPC counters on its own registry, so several
// ledgers can live in one process without colliding on the default one.
type Metrics struct {
	registry *prometheus.Registry

	operations  *prometheus.CounterVec
	fees        *prometheus.CounterVec
	dust        prometheus.Counter
	buybacks    prometheus.Counter
	withdrawals prometheus.Counter
	deposits    prometheus.Counter
	staked      prometheus.Counter
	unstaked    prometheus.Counter
	rewards     prometheus.Counter

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the process and
// go runtime collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MOperations,
			Help:      "Ledger operations by name and result code.",
		}, []string{LOperation, LResult}),
		fees: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MFeesDistributed,
			Help:      "Fee amounts credited, by destination bucket.",
		}, []string{LBucket}),
		dust:        newCounter(MFeeDust, "Fee remainder left undistributed by flooring."),
		buybacks:    newCounter(MBuybacks, "Tokens spent from the treasury on buybacks."),
		withdrawals: newCounter(MFeesWithdrawn, "Tokens withdrawn from the fee vault."),
		deposits:    newCounter(MDeposits, "Tokens credited from outside the ledger."),
		staked:      newCounter(MStaked, "Principal moved into staking vaults."),
		unstaked:    newCounter(MUnstaked, "Principal returned from staking vaults."),
		rewards:     newCounter(MRewardsPaid, "Staking rewards paid by the treasury."),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      MRPCRequests,
			Help:      "RPC requests by method and result code.",
		}, []string{LMethod, LResult}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      MRPCDuration,
			Help:      "RPC request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{LMethod}),
	}

	m.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		m.operations, m.fees, m.dust, m.buybacks, m.withdrawals,
		m.deposits, m.staked, m.unstaked, m.rewards,
		m.rpcRequests, m.rpcDuration,
	)
	return m
}

func newCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveOperation counts one ledger operation by its result code. A nil
// receiver is a no-op so callers need not check whether metrics are enabled.
func (m *Metrics) ObserveOperation(operation string, code cres.ErrorCode) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, code.String()).Inc()
}

// ObserveFees records the buckets of one distribution.
func (m *Metrics) ObserveFees(protocol, creator, buyback, staking, dust uint64) {
	if m == nil {
		return
	}
	m.fees.WithLabelValues(BucketProtocol).Add(float64(protocol))
	m.fees.WithLabelValues(BucketCreator).Add(float64(creator))
	m.fees.WithLabelValues(BucketBuyback).Add(float64(buyback))
	m.fees.WithLabelValues(BucketStaking).Add(float64(staking))
	m.dust.Add(float64(dust))
}

func (m *Metrics) ObserveBuyback(amount uint64) {
	if m == nil {
		return
	}
	m.buybacks.Add(float64(amount))
}

func (m *Metrics) ObserveWithdrawal(amount uint64) {
	if m == nil {
		return
	}
	m.withdrawals.Add(float64(amount))
}

func (m *Metrics) ObserveDeposit(amount uint64) {
	if m == nil {
		return
	}
	m.deposits.Add(float64(amount))
}

func (m *Metrics) ObserveStake(amount uint64) {
	if m == nil {
		return
	}
	m.staked.Add(float64(amount))
}

func (m *Metrics) ObserveUnstake(principal, reward uint64) {
	if m == nil {
		return
	}
	m.unstaked.Add(float64(principal))
	m.rewards.Add(float64(reward))
}

// ObserveRPC records one RPC call.
func (m *Metrics) ObserveRPC(method string, code cres.ErrorCode, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(method, code.String()).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
