package leaveerrors

import (
	"net/http"

	"github.com/cha0jun/leavey/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave category not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid category id",
		http.StatusBadRequest,
	)
	ErrInvalidFilterID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user or manager id filter",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid status filter",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal to end_date",
		http.StatusBadRequest,
	)
	ErrInvalidTotalDays = apperror.New(
		apperror.CodeInvalidInput,
		"total_days must be a positive multiple of 0.5 within the date range",
		http.StatusBadRequest,
	)
	ErrEmptyPatch = apperror.New(
		apperror.CodeInvalidInput,
		"No fields to update",
		http.StatusBadRequest,
	)
	ErrInvalidTargetStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrTargetStatusPending = apperror.New(
		apperror.CodeInvalidState,
		"A request cannot be moved back to PENDING",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Leave request is no longer pending",
		http.StatusBadRequest,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"Only approved requests can be synced",
		http.StatusBadRequest,
	)
	ErrAlreadySynced = apperror.New(
		apperror.CodeInvalidState,
		"Leave request is already synced",
		http.StatusBadRequest,
	)
	ErrLeaveForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this leave request",
		http.StatusForbidden,
	)
	ErrProcessForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only managers and admins can process leave requests",
		http.StatusForbidden,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the owner can change this leave request",
		http.StatusForbidden,
	)
)
