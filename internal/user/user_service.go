package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/shared/contextutil"
	usererrors "github.com/cha0jun/leavey/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	placeholderEmailDomain = "placeholder.invalid"
	unknownUserName        = "Unknown User"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	// Resolve implements middleware.PrincipalResolver with JIT provisioning.
	Resolve(ctx context.Context, id domain.Identity) (domain.Principal, error)
	SyncIdentity(ctx context.Context, id domain.Identity) (UserResponse, error)

	GetMe(ctx context.Context, p domain.Principal) (UserResponse, error)
	UpdateMe(ctx context.Context, p domain.Principal, req UpdateMeRequest) (UserResponse, error)

	GetAll(ctx context.Context, p domain.Principal, q ListUsersQuery) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, p domain.Principal, id string) (UserResponse, error)
	AdminUpdate(ctx context.Context, p domain.Principal, id string, req AdminUpdateUserRequest) (UserResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		recorder: recorder,
		logger:   l,
	}
}

func (s *service) Resolve(ctx context.Context, id domain.Identity) (domain.Principal, error) {
	u, err := s.findOrProvision(ctx, id)
	if err != nil {
		return domain.Principal{}, err
	}
	if !u.IsActive {
		s.logger.Warn("inactive user rejected", zap.String("user_id", u.ID.String()))
		return domain.Principal{}, usererrors.ErrUserInactive
	}
	return u.Principal(), nil
}

// SyncIdentity upserts a user from an identity provider event, refreshing the
// email and name the provider owns. Role and assignments are left alone.
func (s *service) SyncIdentity(ctx context.Context, id domain.Identity) (UserResponse, error) {
	u, err := s.findOrProvision(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	changed := false
	if email := strings.TrimSpace(id.Email); email != "" && email != u.Email {
		u.Email = email
		changed = true
	}
	if name := strings.TrimSpace(id.Name); name != "" && name != u.FullName {
		u.FullName = name
		changed = true
	}
	if changed {
		if err := s.repo.Update(ctx, u); err != nil {
			s.logger.Error("identity sync update failed", zap.String("user_id", u.ID.String()), zap.Error(err))
			return UserResponse{}, mapRepositoryError(err)
		}
		s.logger.Info("identity synced", zap.String("user_id", u.ID.String()))
	}
	return mapToResponse(*u), nil
}

// findOrProvision returns the user for the subject, creating a CONTRACTOR on
// first sight. Two first logins racing on the same subject both end up with
// the row the winner inserted.
func (s *service) findOrProvision(ctx context.Context, id domain.Identity) (*User, error) {
	subject := strings.TrimSpace(id.Subject)
	if subject == "" {
		return nil, usererrors.ErrInvalidIdentity
	}

	u, err := s.repo.FindByExternalID(ctx, subject)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("user lookup failed", zap.String("external_id", subject), zap.Error(err))
		return nil, err
	}

	email := strings.TrimSpace(id.Email)
	if email == "" {
		email = subject + "@" + placeholderEmailDomain
	}
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name = unknownUserName
	}

	u = &User{
		ExternalID: subject,
		Email:      email,
		FullName:   name,
		Role:       domain.RoleContractor,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if uniqueConstraint(err) == "uq_users_external_id" {
			s.logger.Debug("concurrent provisioning, reloading", zap.String("external_id", subject))
			existing, findErr := s.repo.FindByExternalID(ctx, subject)
			if findErr != nil {
				return nil, mapRepositoryError(findErr)
			}
			return existing, nil
		}
		s.logger.Error("user provisioning failed", zap.String("external_id", subject), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("user provisioned",
		zap.String("user_id", u.ID.String()),
		zap.String("external_id", subject),
	)
	return u, nil
}

func (s *service) GetMe(ctx context.Context, p domain.Principal) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, p.UserID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateMe(ctx context.Context, p domain.Principal, req UpdateMeRequest) (UserResponse, error) {
	if req.FullName == nil {
		return UserResponse{}, usererrors.ErrEmptyPatch
	}
	if strings.TrimSpace(*req.FullName) == "" {
		return UserResponse{}, usererrors.ErrEmptyFullName
	}
	return s.applyPatch(ctx, p, p.UserID, func(_ context.Context, _ Repository, u *User) ([]fieldChange, error) {
		var changes []fieldChange
		if name := strings.TrimSpace(*req.FullName); name != u.FullName {
			changes = append(changes, fieldChange{"full_name", u.FullName, name})
			u.FullName = name
		}
		return changes, nil
	})
}

func (s *service) GetAll(ctx context.Context, p domain.Principal, q ListUsersQuery) ([]UserResponse, int64, error) {
	if !p.IsAdmin() {
		return nil, 0, usererrors.ErrUserForbidden
	}

	f := Filter{Offset: q.Offset, Limit: q.Limit}
	if q.Role != "" {
		role := domain.Role(q.Role)
		if !role.Valid() {
			return nil, 0, usererrors.ErrInvalidRole
		}
		f.Role = &role
	}

	users, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, p domain.Principal, id string) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if !p.IsAdmin() && p.UserID != userID {
		return UserResponse{}, usererrors.ErrUserForbidden
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) AdminUpdate(ctx context.Context, p domain.Principal, id string, req AdminUpdateUserRequest) (UserResponse, error) {
	if !p.IsAdmin() {
		return UserResponse{}, usererrors.ErrUserForbidden
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if req.Role == nil && req.VendorID == nil && req.FullName == nil &&
		req.Department == nil && req.ManagerID == nil && req.IsActive == nil {
		return UserResponse{}, usererrors.ErrEmptyPatch
	}
	if req.FullName != nil && strings.TrimSpace(*req.FullName) == "" {
		return UserResponse{}, usererrors.ErrEmptyFullName
	}

	var role domain.Role
	if req.Role != nil {
		role = domain.Role(*req.Role)
		if !role.Valid() {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && strings.TrimSpace(*req.ManagerID) != "" {
		mid, err := uuid.Parse(strings.TrimSpace(*req.ManagerID))
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidManagerID
		}
		if mid == userID {
			return UserResponse{}, usererrors.ErrSelfManager
		}
		managerID = &mid
	}

	return s.applyPatch(ctx, p, userID, func(ctx context.Context, repo Repository, u *User) ([]fieldChange, error) {
		var changes []fieldChange

		if req.Role != nil && role != u.Role {
			changes = append(changes, fieldChange{"role", u.Role, role})
			u.Role = role
		}
		if req.VendorID != nil {
			next := optionalString(*req.VendorID)
			if !equalStringPtr(u.VendorID, next) {
				changes = append(changes, fieldChange{"vendor_id", u.VendorID, next})
				u.VendorID = next
			}
		}
		if req.FullName != nil {
			if name := strings.TrimSpace(*req.FullName); name != u.FullName {
				changes = append(changes, fieldChange{"full_name", u.FullName, name})
				u.FullName = name
			}
		}
		if req.Department != nil {
			next := optionalString(*req.Department)
			if !equalStringPtr(u.Department, next) {
				changes = append(changes, fieldChange{"department", u.Department, next})
				u.Department = next
			}
		}
		if req.ManagerID != nil && !equalUUIDPtr(u.ManagerID, managerID) {
			if managerID != nil {
				if _, err := repo.FindByID(ctx, *managerID); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, usererrors.ErrManagerNotFound
					}
					return nil, err
				}
			}
			changes = append(changes, fieldChange{"manager_id", u.ManagerID, managerID})
			u.ManagerID = managerID
		}
		if req.IsActive != nil && *req.IsActive != u.IsActive {
			changes = append(changes, fieldChange{"is_active", u.IsActive, *req.IsActive})
			u.IsActive = *req.IsActive
		}
		return changes, nil
	})
}

type fieldChange struct {
	field    string
	oldValue any
	newValue any
}

type patchFunc func(ctx context.Context, repo Repository, u *User) ([]fieldChange, error)

// applyPatch loads the target inside a transaction, lets patch mutate it and
// writes one UPDATE_USER audit entry per changed field before committing.
func (s *service) applyPatch(ctx context.Context, p domain.Principal, userID uuid.UUID, patch patchFunc) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	rec := s.recorder.WithTx(tx)

	u, err := qrepo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	changes, err := patch(ctx, qrepo, u)
	if err != nil {
		return UserResponse{}, err
	}
	if len(changes) == 0 {
		return mapToResponse(*u), nil
	}

	u.UpdatedAt = time.Now().UTC()
	if err := qrepo.Update(ctx, u); err != nil {
		l.Error("update user failed", zap.String("user_id", userID.String()), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	for _, c := range changes {
		if err := rec.Record(ctx, audit.Entry{
			ActorID:      p.UserID,
			Action:       audit.ActionUpdateUser,
			FieldChanged: c.field,
			OldValue:     c.oldValue,
			NewValue:     c.newValue,
		}); err != nil {
			l.Error("audit user update failed", zap.String("field", c.field), zap.Error(err))
			return UserResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error("commit user update failed", zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("user updated",
		zap.String("user_id", userID.String()),
		zap.String("actor_id", p.UserID.String()),
		zap.Int("fields", len(changes)),
	)
	return mapToResponse(*u), nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalUUIDPtr(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:         u.ID.String(),
		ExternalID: u.ExternalID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		VendorID:   u.VendorID,
		Department: u.Department,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
