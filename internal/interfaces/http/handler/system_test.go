package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	ok := HealthCheck{Name: "database", Check: func(context.Context) error { return nil }}
	down := HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("healthy", func(t *testing.T) {
		r := newEngine()
		r.GET("/health", NewSystemHandler("backoffice", "test", ok).Health)

		w := do(r, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "healthy", resp.Checks["database"])
	})

	t.Run("one dependency down", func(t *testing.T) {
		r := newEngine()
		r.GET("/health", NewSystemHandler("backoffice", "test", ok, down).Health)

		w := do(r, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Contains(t, resp.Checks["redis"], "connection refused")
		assert.Equal(t, "healthy", resp.Checks["database"])
	})
}

func TestSystemHandler_Info(t *testing.T) {
	r := newEngine()
	r.GET("/system/info", NewSystemHandler("backoffice", "1.2.0").Info)

	var info SystemInfoResponse
	decode(t, do(r, http.MethodGet, "/system/info", nil), &info)
	assert.Equal(t, "1.2.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
