package audit

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/middleware"
	"github.com/cha0jun/leavey/internal/scope"
	"github.com/cha0jun/leavey/internal/shared/apperror"
	"github.com/cha0jun/leavey/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Abort(c, apperror.ErrUnauthorized)
		return
	}

	var q ListAuditLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, err)
		return
	}

	logs, total, err := h.service.GetAll(c.Request.Context(), p, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	offset, limit := scope.NormalizePage(q.Offset, q.Limit)
	meta := response.NewPaginationMeta(total, offset, limit)
	response.Success(c, http.StatusOK, logs, &meta)
}

func (h *Handler) GetLeaveHistory(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Abort(c, apperror.ErrUnauthorized)
		return
	}

	logs, err := h.service.GetLeaveHistory(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs, nil)
}
