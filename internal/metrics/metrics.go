package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewBackendRequestsTotal returns a Prometheus counter vec for backend
// requests performed by the gateway, labelled by method name.
func NewBackendRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Total number of requests sent to the Delika backend",
	}, []string{"method"})
}

// NewBackendFailuresTotal returns a Prometheus counter vec for failed
// backend requests, labelled by method name.
func NewBackendFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_request_failures_total",
		Help: "Total number of failed requests to the Delika backend",
	}, []string{"method"})
}
