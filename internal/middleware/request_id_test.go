package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cha0jun/leavey/internal/middleware"
	"github.com/cha0jun/leavey/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDAndContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seenID string
	var hasLogger bool
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) {
		seenID = contextutil.GetRequestID(c.Request.Context())
		_, hasLogger = contextutil.LoggerFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "rid-1", seenID)
		assert.Equal(t, "rid-1", w.Header().Get(middleware.RequestIDHeader))
		assert.True(t, hasLogger)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		_, err := uuid.Parse(seenID)
		assert.NoError(t, err)
		assert.Equal(t, seenID, w.Header().Get(middleware.RequestIDHeader))
	})
}
