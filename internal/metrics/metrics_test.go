package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-txcore/transaction"
)

func TestMetrics_ObserveTransition(t *testing.T) {
	m := New()

	m.ObserveTransition(transaction.Transition{Kind: "vote", From: transaction.StateDrafting, To: transaction.StateValidating})
	m.ObserveTransition(transaction.Transition{Kind: "vote", From: transaction.StateBuilding, To: transaction.StateFailed})
	m.ObserveTransition(transaction.Transition{Kind: "vote", From: transaction.StateValidating, To: transaction.StateFailed})
	m.ObserveTransition(transaction.Transition{Kind: "vote", From: transaction.StateBuilding, To: transaction.StateSubmitted})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("vote", "VALIDATING")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("vote", "FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildFailuresTotal.WithLabelValues("vote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmittedTotal.WithLabelValues("vote")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObservePriceRefresh("coingecko", nil)
	m.ObservePriceRefresh("coingecko", errors.New("timeout"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `txcore_price_refresh_total{result="error",source="coingecko"} 1`)
	assert.Contains(t, string(body), `txcore_price_refresh_total{result="ok",source="coingecko"} 1`)
}
