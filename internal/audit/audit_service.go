package audit

import (
	"context"
	"errors"
	"time"

	auditerrors "github.com/cha0jun/leavey/internal/audit/errors"
	"github.com/cha0jun/leavey/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p domain.Principal, q ListAuditLogsQuery) ([]AuditLogResponse, int64, error)
	GetLeaveHistory(ctx context.Context, p domain.Principal, leaveID string) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, p domain.Principal, q ListAuditLogsQuery) ([]AuditLogResponse, int64, error) {
	if !p.IsAdmin() {
		return nil, 0, auditerrors.ErrAuditForbidden
	}

	f := Filter{Offset: q.Offset, Limit: q.Limit}
	if q.ActorID != "" {
		id, err := uuid.Parse(q.ActorID)
		if err != nil {
			return nil, 0, auditerrors.ErrInvalidActorID
		}
		f.ActorID = &id
	}
	if q.LeaveID != "" {
		id, err := uuid.Parse(q.LeaveID)
		if err != nil {
			return nil, 0, auditerrors.ErrInvalidLeaveID
		}
		f.LeaveRequestID = &id
	}

	logs, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(logs), total, nil
}

func (s *service) GetLeaveHistory(ctx context.Context, p domain.Principal, leaveID string) ([]AuditLogResponse, error) {
	id, err := uuid.Parse(leaveID)
	if err != nil {
		return nil, auditerrors.ErrInvalidLeaveID
	}

	ownerID, err := s.repo.FindLeaveOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auditerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if !p.CanView(ownerID) {
		s.logger.Warn("leave history access denied",
			zap.String("leave_id", leaveID),
			zap.String("user_id", p.UserID.String()),
		)
		return nil, auditerrors.ErrAuditForbidden
	}

	logs, err := s.repo.FindByLeaveRequest(ctx, id)
	if err != nil {
		s.logger.Error("leave history lookup failed", zap.String("leave_id", leaveID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(logs), nil
}

func mapToResponse(l AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:           l.ID.String(),
		ActorUserID:  l.ActorUserID.String(),
		Action:       string(l.Action),
		FieldChanged: l.FieldChanged,
		OldValue:     l.OldValue,
		NewValue:     l.NewValue,
		Timestamp:    l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.LeaveRequestID != nil {
		v := l.LeaveRequestID.String()
		resp.LeaveRequestID = &v
	}
	if l.Actor != nil {
		resp.Actor = &ActorSummary{
			ID:       l.Actor.ID.String(),
			FullName: l.Actor.FullName,
			Email:    l.Actor.Email,
			Role:     l.Actor.Role,
		}
	}
	return resp
}

func mapToListResponse(logs []AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapToResponse(l)
	}
	return resp
}
