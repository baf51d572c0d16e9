package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/splitly/internal/metrics"
)

// MetricsInterceptor records a request count and latency for every RPC, labelled
// with the procedure and the resulting Connect code ("ok" on success).
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			done := m.RPCStarted(req.Spec().Procedure)
			resp, err := next(ctx, req)
			done(codeOf(err))
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
