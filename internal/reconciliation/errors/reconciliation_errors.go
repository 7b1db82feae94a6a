package reconciliationerrors

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/shared/apperror"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be between 2000 and 9999",
		http.StatusBadRequest,
	)
	ErrInvalidWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working_days must be between 0 and 31",
		http.StatusBadRequest,
	)
	ErrInvalidFormat = apperror.New(
		apperror.CodeInvalidInput,
		"format must be csv or xlsx",
		http.StatusBadRequest,
	)
	ErrFinanceForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only managers and admins can read reconciliation reports",
		http.StatusForbidden,
	)
)
