package category

import (
	"errors"
	"strings"

	categoryerrors "github.com/cha0jun/leavey/internal/category/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return categoryerrors.ErrCategoryNotFound
	}
	if isNameConflict(err) {
		return categoryerrors.ErrCategoryNameTaken
	}
	return err
}

func isNameConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_categories_name"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed: leave_categories.name")
}
