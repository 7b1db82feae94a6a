package webhookerrors

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/shared/apperror"
)

var (
	ErrInvalidSignature = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid webhook signature",
		http.StatusUnauthorized,
	)
	ErrInvalidPayload = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid webhook payload",
		http.StatusBadRequest,
	)
	ErrMissingSubject = apperror.New(
		apperror.CodeInvalidInput,
		"Webhook user has no id",
		http.StatusBadRequest,
	)
)
