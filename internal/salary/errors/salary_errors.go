package salaryerrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)

	ErrSalaryEffectiveDateExists = apperror.New(
		apperror.CodeConflict,
		"A salary record with this effective date already exists for the staff member",
		http.StatusConflict,
	)

	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid effective date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid staff ID",
		http.StatusBadRequest,
	)
)
