package documenterrors

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrFileMissing = apperror.New(
		apperror.CodeNotFound,
		"Document file is missing from storage",
		http.StatusNotFound,
	)
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document id",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"file is required",
		http.StatusBadRequest,
	)
	ErrFileEmpty = apperror.New(
		apperror.CodeInvalidInput,
		"file is empty",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"file exceeds maximum allowed size",
		http.StatusRequestEntityTooLarge,
	)
	ErrFileTypeNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"file type not allowed, expected pdf, png or jpeg",
		http.StatusUnsupportedMediaType,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the requester can attach documents",
		http.StatusForbidden,
	)
)
