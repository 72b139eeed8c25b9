// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/oauth1d/pkg/authserver"
)

func TestMetrics_Observe(t *testing.T) {
	t.Parallel()
	m := New()

	m.Observe(authserver.OperationTemporaryCredential, authserver.OutcomeSuccess, 5*time.Millisecond)
	m.Observe(authserver.OperationTemporaryCredential, authserver.OutcomeSuccess, 7*time.Millisecond)
	m.Observe(authserver.OperationTokenCredential, "invalid_nonce", time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(
		m.operations.WithLabelValues(authserver.OperationTemporaryCredential, authserver.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		m.operations.WithLabelValues(authserver.OperationTokenCredential, "invalid_nonce")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()
	m := New()
	m.Observe(authserver.OperationRevoke, authserver.OutcomeSuccess, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `oauth1d_operations_total{operation="revoke",outcome="success"} 1`)
	assert.Contains(t, body, "oauth1d_operation_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	t.Parallel()
	a, b := New(), New()
	a.Observe(authserver.OperationAuthorize, authserver.OutcomeSuccess, 0)

	assert.Equal(t, 1, testutil.CollectAndCount(a.operations))
	assert.Equal(t, 0, testutil.CollectAndCount(b.operations))
	assert.NotSame(t, a.Registry(), b.Registry())
}
