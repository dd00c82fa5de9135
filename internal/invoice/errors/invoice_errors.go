package invoiceerrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrInvoiceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Invoice not found",
		http.StatusNotFound,
	)

	ErrInvoiceAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Invoice has already been paid",
		http.StatusConflict,
	)

	ErrInvoiceVoided = apperror.New(
		apperror.CodeInvalidState,
		"Invoice has been voided",
		http.StatusConflict,
	)

	ErrSignupInvoiceExists = apperror.New(
		apperror.CodeConflict,
		"Signup invoice already exists for this member",
		http.StatusConflict,
	)

	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid due date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Invoice amount must be non-negative",
		http.StatusBadRequest,
	)
)
