package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/shared/apperror"
	"github.com/cha0jun/leavey/internal/shared/contextutil"
	"github.com/cha0jun/leavey/internal/shared/response"
	"github.com/cha0jun/leavey/internal/user"
	webhookerrors "github.com/cha0jun/leavey/internal/webhook/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// IdentitySyncer is the provisioning entry point of the user module.
type IdentitySyncer interface {
	SyncIdentity(ctx context.Context, id domain.Identity) (user.UserResponse, error)
}

type Handler struct {
	syncer IdentitySyncer
	secret string
	logger *zap.Logger
}

func NewHandler(syncer IdentitySyncer, secret string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("webhook.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("webhook.handler")
	}
	return &Handler{syncer: syncer, secret: secret, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Identity handles identity provider user events. Unknown event types are
// acknowledged so the provider stops retrying them.
func (h *Handler) Identity(c *gin.Context) {
	ctx := c.Request.Context()
	log := contextutil.GetLogger(ctx, h.logger)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.writeError(c, webhookerrors.ErrInvalidPayload)
		return
	}
	if !VerifySignature(h.secret, body, c.GetHeader(SignatureHeader)) {
		log.Warn("webhook signature rejected", zap.String("client_ip", c.ClientIP()))
		h.writeError(c, webhookerrors.ErrInvalidSignature)
		return
	}

	var event IdentityEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Type == "" {
		h.writeError(c, webhookerrors.ErrInvalidPayload)
		return
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
	default:
		log.Info("webhook event ignored", zap.String("event", event.Type))
		response.Success(c, http.StatusOK, AckResponse{Status: "ignored", Event: event.Type}, nil)
		return
	}

	identity := event.Data.Identity()
	if identity.Subject == "" {
		h.writeError(c, webhookerrors.ErrMissingSubject)
		return
	}

	u, err := h.syncer.SyncIdentity(ctx, identity)
	if err != nil {
		log.Error("webhook identity sync failed",
			zap.String("event", event.Type),
			zap.String("subject", identity.Subject),
			zap.Error(err),
		)
		h.writeError(c, err)
		return
	}

	log.Info("webhook identity synced", zap.String("event", event.Type), zap.String("user_id", u.ID))
	response.Success(c, http.StatusOK, AckResponse{Status: "synced", Event: event.Type, UserID: u.ID}, nil)
}
