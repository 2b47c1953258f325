package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	LedgerDeltaTotal           = "ledger_delta_total"
	LedgerPointsTotal          = "ledger_points_total"
	IntegrityErrorTotal        = "integrity_error_total"
	FacadeFallbackTotal        = "facade_fallback_total"
	PodMatchTotal              = "pod_match_total"
	UnresolvedReconciliation   = "unresolved_reconciliations"
	FacadeBreakerState         = "facade_breaker_state"
	BalanceDriftProfiles       = "balance_drift_profiles"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		UnresolvedReconciliation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: UnresolvedReconciliation,
			Help: "Number of operations waiting for manual reconciliation",
		}, []string{}),
		FacadeBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: FacadeBreakerState,
			Help: "State of the remote store breaker, 0 closed, 1 half open, 2 open",
		}, []string{"name"}),
		BalanceDriftProfiles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: BalanceDriftProfiles,
			Help: "Number of profiles whose balance differs from the sum of their history",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
		LedgerDeltaTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LedgerDeltaTotal,
			Help: "Count of applied point deltas",
		}, []string{"action", "result"}),
		LedgerPointsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LedgerPointsTotal,
			Help: "Sum of points moved by the ledger",
		}, []string{"direction"}),
		IntegrityErrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: IntegrityErrorTotal,
			Help: "Count of partially completed operations",
		}, []string{"operation", "step"}),
		FacadeFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: FacadeFallbackTotal,
			Help: "Count of operations served by the local fallback",
		}, []string{"operation"}),
		PodMatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PodMatchTotal,
			Help: "Count of pod match attempts",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
	}
)

// PromCollectors lists every metric above for registration.
func PromCollectors() []prometheus.Collector {
	var result []prometheus.Collector
	for _, g := range PromGauges {
		result = append(result, g)
	}
	for _, c := range PromCounters {
		result = append(result, c)
	}
	for _, h := range PromHistograms {
		result = append(result, h)
	}

	return result
}
