package service

import "github.com/mmynk/splitly/internal/metrics"

// Option configures a service.
type Option func(*options)

type options struct {
	metrics            *metrics.Metrics
	suggestSettlements bool
}

func newOptions(opts []Option) options {
	o := options{suggestSettlements: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMetrics records balance computations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithSettlementSuggestions turns suggested transfers in GetGroupBalances on or off.
// They are on by default.
func WithSettlementSuggestions(enabled bool) Option {
	return func(o *options) { o.suggestSettlements = enabled }
}
