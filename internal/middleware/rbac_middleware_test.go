package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func newRBACRouter(rbac middleware.RBACService, p *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setPrincipal := func(c *gin.Context) {
		if p != nil {
			middleware.SetPrincipal(c, *p)
		}
		c.Next()
	}
	r.POST("/leaves/:id/process", setPrincipal, middleware.RBACAuthorize(rbac, domain.ResourceLeave, domain.ActionProcess), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRBACAuthorize(t *testing.T) {
	manager := &domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}

	t.Run("allowed", func(t *testing.T) {
		rbac := &fakeRBAC{allowed: true}
		w := httptest.NewRecorder()
		newRBACRouter(rbac, manager).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/process", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: "MANAGER", Resource: "leave", Action: "process"}, rbac.got)
	})

	t.Run("negative denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRBACRouter(&fakeRBAC{}, manager).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/process", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, w.Body.Bytes()))
	})

	t.Run("negative enforcer error", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRBACRouter(&fakeRBAC{err: errors.New("boom")}, manager).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/process", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("negative no principal", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRBACRouter(&fakeRBAC{allowed: true}, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/1/process", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
