package categoryerrors

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/shared/apperror"
)

var (
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave category not found",
		http.StatusNotFound,
	)
	ErrCategoryNameTaken = apperror.New(
		apperror.CodeConflict,
		"A leave category with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid category id",
		http.StatusBadRequest,
	)
	ErrEmptyPatch = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrCategoryForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only admins can manage leave categories",
		http.StatusForbidden,
	)
)
