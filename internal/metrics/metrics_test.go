package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	done := m.RPCStarted("/splitly.v1.GroupService/GetGroupBalances")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rpcInFlight))
	done("ok")
	assert.Equal(t, float64(0), testutil.ToFloat64(m.rpcInFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rpcRequests.WithLabelValues("/splitly.v1.GroupService/GetGroupBalances", "ok")))

	m.RecordBalanceComputation(OutcomeOK)
	m.RecordBalanceComputation(OutcomeOK)
	m.RecordBalanceComputation(OutcomeInvariant)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.balanceComputations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.balanceComputations.WithLabelValues(OutcomeInvariant)))

	m.ObserveSuggestedTransfers(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "splitly_rpc_requests_total")
	assert.Contains(t, string(body), "splitly_balances_suggested_transfers_count 1")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RPCStarted("/x")("ok")
	m.RecordBalanceComputation(OutcomeOK)
	m.ObserveSuggestedTransfers(1)
}

func TestNewIsolatedRegistries(t *testing.T) {
	// Each instance has its own registry, so creating two must not panic.
	a, b := New(), New()
	assert.NotSame(t, a.Registry(), b.Registry())
}
