package document

import (
	"mime"
	"net/http"

	documenterrors "github.com/cha0jun/leavey/internal/document/errors"
	"github.com/cha0jun/leavey/internal/middleware"
	"github.com/cha0jun/leavey/internal/shared/apperror"
	"github.com/cha0jun/leavey/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const formFileField = "file"

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Abort(c, apperror.ErrUnauthorized)
		return
	}

	fh, err := c.FormFile(formFileField)
	if err != nil {
		h.writeServiceError(c, documenterrors.ErrFileRequired)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.Upload(c.Request.Context(), p, c.Param("id"), fh.Filename, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Abort(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.List(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Abort(c, apperror.ErrUnauthorized)
		return
	}

	dl, err := h.service.Download(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer dl.Body.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename})
	c.DataFromReader(http.StatusOK, dl.SizeBytes, dl.ContentType, dl.Body, map[string]string{
		"Content-Disposition": disposition,
	})
}
