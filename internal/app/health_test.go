package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthEnvelope struct {
	Ok    bool           `json:"ok"`
	Data  HealthResponse `json:"data"`
	Error struct {
		Code    string         `json:"code"`
		Details HealthResponse `json:"details"`
	} `json:"error"`
}

func serveHealth(t *testing.T, checks map[string]HealthCheck) (*httptest.ResponseRecorder, healthEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health("test", checks))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealth_AllChecksPass(t *testing.T) {
	ok := func(context.Context) error { return nil }

	w, body := serveHealth(t, map[string]HealthCheck{"database": ok, "redis": ok})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Ok)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, "test", body.Data.Environment)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, body.Data.Checks)
}

func TestHealth_FailingCheckReturns503(t *testing.T) {
	w, body := serveHealth(t, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, body.Ok)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "degraded", body.Error.Details.Status)
	assert.Equal(t, "ok", body.Error.Details.Checks["database"])
	assert.Equal(t, "connection refused", body.Error.Details.Checks["redis"])
}

func TestHealth_ChecksGetDeadline(t *testing.T) {
	var hasDeadline bool
	serveHealth(t, map[string]HealthCheck{
		"database": func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		},
	})
	assert.True(t, hasDeadline)
}
