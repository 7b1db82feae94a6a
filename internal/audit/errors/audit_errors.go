package auditerrors

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/shared/apperror"
)

var (
	ErrAuditLogImmutable = apperror.New(
		apperror.CodeInvalidState,
		"audit log entries cannot be changed",
		http.StatusConflict,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAuditForbidden = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to read this audit trail",
		http.StatusForbidden,
	)
)
