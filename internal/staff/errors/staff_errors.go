package stafferrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff member not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"A staff member with this email already exists",
		http.StatusConflict,
	)

	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)

	ErrInvalidPosition = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid staff position",
		http.StatusBadRequest,
	)
)
