package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/leave"
	leaveerrors "github.com/cha0jun/leavey/internal/leave/errors"
	"github.com/cha0jun/leavey/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn    func(ctx context.Context, p domain.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	selfEditFn  func(ctx context.Context, p domain.Principal, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	processFn   func(ctx context.Context, p domain.Principal, id, target string) (leave.LeaveResponse, error)
	cancelFn    func(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error)
	retrySyncFn func(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error)
	getAllFn    func(ctx context.Context, p domain.Principal, q leave.ListLeavesQuery) ([]leave.LeaveResponse, int64, error)
	getByIDFn   func(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, p domain.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, p, req)
}
func (f *fakeLeaveService) SelfEdit(ctx context.Context, p domain.Principal, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.selfEditFn(ctx, p, id, req)
}
func (f *fakeLeaveService) Process(ctx context.Context, p domain.Principal, id, target string) (leave.LeaveResponse, error) {
	return f.processFn(ctx, p, id, target)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, p, id)
}
func (f *fakeLeaveService) RetrySync(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error) {
	return f.retrySyncFn(ctx, p, id)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, p domain.Principal, q leave.ListLeavesQuery) ([]leave.LeaveResponse, int64, error) {
	return f.getAllFn(ctx, p, q)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, p domain.Principal, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, p, id)
}

type allowAll struct{}

func (allowAll) Enforce(domain.EnforceRequest) (bool, error) { return true, nil }

func newRouter(svc leave.Service, p *domain.Principal, createGuards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		if p != nil {
			middleware.SetPrincipal(c, *p)
		}
		c.Next()
	}
	leave.RegisterRoutes(r.Group("/api/v1"), leave.NewHandler(svc), auth, allowAll{}, createGuards...)
	return r
}

func doJSON(r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLeaveHandler_Create(t *testing.T) {
	p := domain.Principal{UserID: uuid.New(), Role: domain.RoleContractor}
	body := map[string]any{
		"category_id": uuid.NewString(),
		"start_date":  "2026-03-02",
		"end_date":    "2026-03-02",
		"total_days":  0.5,
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{createFn: func(_ context.Context, got domain.Principal, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, p.UserID, got.UserID)
			assert.Equal(t, 0.5, req.TotalDays)
			return leave.LeaveResponse{ReferenceNo: "LV-000001", Status: "PENDING"}, nil
		}}

		w := doJSON(newRouter(svc, &p), http.MethodPost, "/api/v1/leaves", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), "LV-000001")
	})

	t.Run("create guards run before handler", func(t *testing.T) {
		called := false
		svc := &fakeLeaveService{createFn: func(context.Context, domain.Principal, leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			called = true
			return leave.LeaveResponse{}, nil
		}}
		guard := func(c *gin.Context) {
			c.AbortWithStatus(http.StatusTooManyRequests)
		}

		w := doJSON(newRouter(svc, &p, guard), http.MethodPost, "/api/v1/leaves", body)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.False(t, called)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		w := doJSON(newRouter(&fakeLeaveService{}, &p), http.MethodPost, "/api/v1/leaves", map[string]any{"reason": "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative no principal", func(t *testing.T) {
		w := doJSON(newRouter(&fakeLeaveService{}, nil), http.MethodPost, "/api/v1/leaves", body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative category not found", func(t *testing.T) {
		svc := &fakeLeaveService{createFn: func(context.Context, domain.Principal, leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrCategoryNotFound
		}}

		w := doJSON(newRouter(svc, &p), http.MethodPost, "/api/v1/leaves", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestLeaveHandler_Process(t *testing.T) {
	p := domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{processFn: func(_ context.Context, _ domain.Principal, gotID, target string) (leave.LeaveResponse, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, "APPROVED", target)
			return leave.LeaveResponse{ID: gotID, Status: "APPROVED", ExternalSyncStatus: "ERROR"}, nil
		}}

		w := doJSON(newRouter(svc, &p), http.MethodPost, "/api/v1/leaves/"+id+"/process", map[string]string{"status": "APPROVED"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp leave.LeaveResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &resp))
		assert.Equal(t, "ERROR", resp.ExternalSyncStatus)
	})

	t.Run("negative invalid state maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{processFn: func(context.Context, domain.Principal, string, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrNotPending
		}}

		w := doJSON(newRouter(svc, &p), http.MethodPost, "/api/v1/leaves/"+id+"/process", map[string]string{"status": "REJECTED"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("negative forbidden", func(t *testing.T) {
		svc := &fakeLeaveService{processFn: func(context.Context, domain.Principal, string, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrProcessForbidden
		}}

		w := doJSON(newRouter(svc, &p), http.MethodPost, "/api/v1/leaves/"+id+"/process", map[string]string{"status": "APPROVED"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative unknown error hides details", func(t *testing.T) {
		svc := &fakeLeaveService{processFn: func(context.Context, domain.Principal, string, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, errors.New("pq: connection reset")
		}}

		w := doJSON(newRouter(svc, &p), http.MethodPost, "/api/v1/leaves/"+id+"/process", map[string]string{"status": "APPROVED"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.NotContains(t, env.Error.Message, "pq")
	})
}

func TestLeaveHandler_GetAll(t *testing.T) {
	p := domain.Principal{UserID: uuid.New(), Role: domain.RoleManager}

	t.Run("binds filters and returns meta", func(t *testing.T) {
		svc := &fakeLeaveService{getAllFn: func(_ context.Context, _ domain.Principal, q leave.ListLeavesQuery) ([]leave.LeaveResponse, int64, error) {
			assert.Equal(t, "APPROVED", q.Status)
			assert.Equal(t, "Eng", q.Department)
			assert.True(t, q.Mine)
			assert.Equal(t, 20, q.Limit)
			return []leave.LeaveResponse{{ID: "a"}, {ID: "b"}}, 42, nil
		}}

		w := doJSON(newRouter(svc, &p), http.MethodGet, "/api/v1/leaves?status=APPROVED&department=Eng&mine=true&limit=20", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.JSONEq(t, `{"total":42,"offset":0,"limit":20}`, string(env.Meta))
	})

	t.Run("negative limit above max", func(t *testing.T) {
		w := doJSON(newRouter(&fakeLeaveService{}, &p), http.MethodGet, "/api/v1/leaves?limit=500", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_UpdateCancelSync(t *testing.T) {
	p := domain.Principal{UserID: uuid.New(), Role: domain.RoleAdmin}
	id := uuid.NewString()

	svc := &fakeLeaveService{
		selfEditFn: func(_ context.Context, _ domain.Principal, _ string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
			require.NotNil(t, req.Reason)
			assert.Nil(t, req.CategoryID)
			return leave.LeaveResponse{Reason: *req.Reason}, nil
		},
		cancelFn: func(context.Context, domain.Principal, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{Status: "CANCELLED"}, nil
		},
		retrySyncFn: func(context.Context, domain.Principal, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrAlreadySynced
		},
		getByIDFn: func(context.Context, domain.Principal, string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveForbidden
		},
	}
	r := newRouter(svc, &p)

	w := doJSON(r, http.MethodPatch, "/api/v1/leaves/"+id, map[string]string{"reason": "updated"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/leaves/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CANCELLED")

	w = doJSON(r, http.MethodPost, "/api/v1/leaves/"+id+"/sync", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w.Body.Bytes()).Error.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/leaves/"+id, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
