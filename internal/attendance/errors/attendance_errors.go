package attendanceerrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrInvalidQRCode = apperror.New(
		apperror.CodeInvalidQRCode,
		"Invalid QR code",
		http.StatusBadRequest,
	)
	ErrQRCodeExpired = apperror.New(
		apperror.CodeQRCodeExpired,
		"QR code has expired",
		http.StatusBadRequest,
	)
	ErrQRCodeReplayed = apperror.New(
		apperror.CodeInvalidQRCode,
		"QR code has already been used",
		http.StatusBadRequest,
	)
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"Member not found",
		http.StatusNotFound,
	)
	ErrMemberInactive = apperror.New(
		apperror.CodeInvalidState,
		"Member is not active",
		http.StatusBadRequest,
	)
	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range",
		http.StatusBadRequest,
	)
)
