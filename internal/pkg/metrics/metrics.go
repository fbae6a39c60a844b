package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "deploy_networks"

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics groups the collectors recorded by the network service.
type Metrics struct {
	ProviderInvocations *prometheus.CounterVec
	NetworkChecks       *prometheus.CounterVec
	CheckDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_invocations_total",
			Help:      "Providers opened per network, by result.",
		}, []string{"network", "result"}),
		NetworkChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "network_checks_total",
			Help:      "Connectivity checks per network, by result.",
		}, []string{"network", "result"}),
		CheckDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "network_check_duration_seconds",
			Help:      "Duration of connectivity checks.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"network"}),
	}
	reg.MustRegister(m.ProviderInvocations, m.NetworkChecks, m.CheckDuration)
	return m
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
