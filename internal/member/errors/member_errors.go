package membererrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"Member not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"A member with this email already exists",
		http.StatusConflict,
	)

	ErrMemberNumberTaken = apperror.New(
		apperror.CodeConflict,
		"Member number already in use",
		http.StatusConflict,
	)

	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid join date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)

	ErrPlanNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Membership plan not found",
		http.StatusBadRequest,
	)
)
