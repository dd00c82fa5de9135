package brancherrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrBranchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Branch not found",
		http.StatusNotFound,
	)

	ErrBranchCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Branch with the same code already exists",
		http.StatusConflict,
	)

	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid branch ID",
		http.StatusBadRequest,
	)
)
