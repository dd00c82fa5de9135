package gymclasserrors

import (
	"net/http"

	"go-gym/internal/shared/apperror"
)

var (
	ErrClassNotFound = apperror.New(
		apperror.CodeNotFound,
		"Class not found",
		http.StatusNotFound,
	)

	ErrBookingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Booking not found",
		http.StatusNotFound,
	)

	ErrClassFull = apperror.New(
		apperror.CodeConflict,
		"Class is fully booked",
		http.StatusConflict,
	)

	ErrAlreadyBooked = apperror.New(
		apperror.CodeConflict,
		"Member already has a booking for this class",
		http.StatusConflict,
	)

	ErrClassInactive = apperror.New(
		apperror.CodeInvalidState,
		"Class is not open for booking",
		http.StatusConflict,
	)

	ErrClassStarted = apperror.New(
		apperror.CodeInvalidState,
		"Class has already started",
		http.StatusConflict,
	)

	ErrBookingNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"Booking is not in a cancellable state",
		http.StatusConflict,
	)

	ErrInvalidSchedule = apperror.New(
		apperror.CodeInvalidInput,
		"Class end time must be after start time",
		http.StatusBadRequest,
	)

	ErrInvalidClassID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid class ID",
		http.StatusBadRequest,
	)

	ErrInvalidMemberID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid member ID",
		http.StatusBadRequest,
	)
)
