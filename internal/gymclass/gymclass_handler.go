package gymclass

import (
	"net/http"

	"go-gym/internal/identity"
	"go-gym/internal/policy"
	"go-gym/internal/shared/apperror"
	"go-gym/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func requestBranch(c *gin.Context) string {
	decision, _ := policy.DecisionFromContext(c)
	return decision.EffectiveBranch(c.Query("branchId"))
}

func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	branchID := requestBranch(c)
	if branchID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Branch ID is required", nil)
		return
	}

	resp, err := h.service.CreateClass(c.Request.Context(), branchID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Class created", resp, nil)
}

func (h *Handler) GetClasses(c *gin.Context) {
	upcomingOnly := c.Query("upcoming") == "true"

	resp, err := h.service.GetClasses(c.Request.Context(), requestBranch(c), upcomingOnly)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Classes retrieved", resp, nil)
}

func (h *Handler) GetClassByID(c *gin.Context) {
	resp, err := h.service.GetClassByID(c.Request.Context(), requestBranch(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Class retrieved", resp, nil)
}

func (h *Handler) UpdateClass(c *gin.Context) {
	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.UpdateClass(c.Request.Context(), requestBranch(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Class updated", resp, nil)
}

func (h *Handler) DeleteClass(c *gin.Context) {
	if err := h.service.DeleteClass(c.Request.Context(), requestBranch(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Class deleted", nil, nil)
}

func (h *Handler) BookClass(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	decision, _ := policy.DecisionFromContext(c)
	if decision.SelfOnly {
		p, _ := identity.FromContext(c)
		if req.MemberID != p.MemberID {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only book classes for yourself", nil)
			return
		}
	}

	branchID := requestBranch(c)
	if branchID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Branch ID is required", nil)
		return
	}

	resp, err := h.service.BookClass(c.Request.Context(), branchID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Class booked", resp, nil)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	requester := ""
	decision, _ := policy.DecisionFromContext(c)
	if decision.SelfOnly {
		p, _ := identity.FromContext(c)
		requester = p.MemberID
	}

	resp, err := h.service.CancelBooking(c.Request.Context(), c.Param("bookingId"), requester)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled", resp, nil)
}

func (h *Handler) GetClassBookings(c *gin.Context) {
	resp, err := h.service.GetClassBookings(c.Request.Context(), requestBranch(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Bookings retrieved", resp, nil)
}

func (h *Handler) MyBookings(c *gin.Context) {
	p, _ := identity.FromContext(c)
	if p.MemberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Only members have bookings", nil)
		return
	}

	resp, err := h.service.GetMemberBookings(c.Request.Context(), p.MemberID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Bookings retrieved", resp, nil)
}
