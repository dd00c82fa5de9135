package paymenterrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrPaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payment not found",
		http.StatusNotFound,
	)

	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Payment amount must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor ID",
		http.StatusBadRequest,
	)

	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)
)
