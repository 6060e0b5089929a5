// metrics.go
// Package metrics records request and token lifecycle metrics for the account API client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives client metrics. Outcome labels come from response.Kind.
type Recorder interface {
	ObserveRequest(action, outcome string, duration time.Duration)
	IncTokenFetch(outcome string)
	IncTokenRetry(action string)
}

// Noop discards all metrics.
type Noop struct{}

func (Noop) ObserveRequest(string, string, time.Duration) {}
func (Noop) IncTokenFetch(string)                         {}
func (Noop) IncTokenRetry(string)                         {}

// Prometheus is a Recorder backed by prometheus collectors.
type Prometheus struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	TokenFetches    *prometheus.CounterVec
	TokenRetries    *prometheus.CounterVec
}

// NewPrometheus registers the client collectors with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_api",
			Name:      "requests_total",
			Help:      "Logical API calls by action and outcome",
		}, []string{"action", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "account_api",
			Name:      "request_duration_seconds",
			Help:      "Duration of logical API calls, including token resolution and retries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		TokenFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_api",
			Name:      "token_fetches_total",
			Help:      "get_token calls by outcome",
		}, []string{"outcome"}),
		TokenRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_api",
			Name:      "token_retries_total",
			Help:      "Requests retried after the API rejected the token",
		}, []string{"action"}),
	}
}

func (p *Prometheus) ObserveRequest(action, outcome string, duration time.Duration) {
	p.Requests.WithLabelValues(action, outcome).Inc()
	p.RequestDuration.WithLabelValues(action).Observe(duration.Seconds())
}

func (p *Prometheus) IncTokenFetch(outcome string) {
	p.TokenFetches.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) IncTokenRetry(action string) {
	p.TokenRetries.WithLabelValues(action).Inc()
}
