package user

import (
	"errors"
	"strings"

	usererrors "github.com/cha0jun/leavey/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	switch uniqueConstraint(err) {
	case "uq_users_email":
		return usererrors.ErrUserAlreadyExists
	}

	return err
}

// uniqueConstraint names the unique index a write collided with, or returns
// "" when err is not a unique violation. The string fallback covers drivers
// that do not surface a *pgconn.PgError.
func uniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return pgErr.ConstraintName
		}
		return ""
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint failed: users.external_id"),
		strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_users_external_id"):
		return "uq_users_external_id"
	case strings.Contains(msg, "unique constraint failed: users.email"),
		strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_users_email"):
		return "uq_users_email"
	}
	return ""
}
