package attendance

import (
	"net/http"
	"strconv"
	"time"

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// effectiveBranch resolves the branch scope for the request from the
// policy decision; a superadmin may target any branch via query.
func effectiveBranch(c *gin.Context) string {
	decision, _ := policy.DecisionFromContext(c)
	return decision.EffectiveBranch(c.Query("branchId"))
}

// subjectAllowed enforces the member self-filter: a member principal
// may only target its own records.
func subjectAllowed(c *gin.Context, memberID string) bool {
	decision, ok := policy.DecisionFromContext(c)
	if !ok || !decision.SelfOnly {
		return true
	}
	p, _ := identity.FromContext(c)
	return memberID != "" && memberID == p.MemberID
}

func writeCheckResult(c *gin.Context, result CheckResult, createdStatus int) {
	if !result.Success {
		// Expected operator outcome, not a fault: 200 + success=false.
		response.Conflict(c, http.StatusOK, result.Message, result.Attendance)
		return
	}
	response.Success(c, createdStatus, result.Message, result.Attendance, nil)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	branchID := effectiveBranch(c)
	if branchID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Branch ID is required", nil)
		return
	}

	p, _ := identity.FromContext(c)
	result, err := h.service.CheckIn(c.Request.Context(), branchID, req.MemberID, p.StaffID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeCheckResult(c, result, http.StatusCreated)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	branchID := effectiveBranch(c)

	p, _ := identity.FromContext(c)
	result, err := h.service.CheckOut(c.Request.Context(), branchID, req.MemberID, p.StaffID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeCheckResult(c, result, http.StatusOK)
}

func (h *Handler) ScanQR(c *gin.Context) {
	var req ScanQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "QR code data is required", nil)
		return
	}

	branchID := effectiveBranch(c)
	if branchID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Branch ID is required", nil)
		return
	}

	p, _ := identity.FromContext(c)
	result, err := h.service.ScanQR(c.Request.Context(), branchID, req.QRData, p.StaffID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeCheckResult(c, result, http.StatusOK)
}

func (h *Handler) MyQRToken(c *gin.Context) {
	p, _ := identity.FromContext(c)
	if p.MemberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Only members can request a check-in code", nil)
		return
	}

	token, err := h.service.IssueQRToken(c.Request.Context(), p.MemberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "QR token issued", token, nil)
}

func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.TodayAttendance(c.Request.Context(), effectiveBranch(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Today's attendance retrieved", resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		BranchID: effectiveBranch(c),
		MemberID: c.Query("memberId"),
		Status:   c.Query("status"),
	}
	if raw := c.Query("date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			f.Date = &d
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.Limit = n
		}
	}

	resp, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance retrieved", resp, nil)
}

func (h *Handler) MemberHistory(c *gin.Context) {
	memberID := c.Param("memberId")
	if !subjectAllowed(c, memberID) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own attendance", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.service.MemberHistory(c.Request.Context(), effectiveBranch(c), memberID, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance history retrieved", resp, nil)
}

func (h *Handler) MemberToday(c *gin.Context) {
	memberID := c.Param("memberId")
	if !subjectAllowed(c, memberID) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own attendance", nil)
		return
	}

	resp, err := h.service.MemberToday(c.Request.Context(), effectiveBranch(c), memberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Today's attendance retrieved", resp, nil)
}

func (h *Handler) Status(c *gin.Context) {
	memberID := c.Param("memberId")
	if !subjectAllowed(c, memberID) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own status", nil)
		return
	}

	resp, err := h.service.CurrentStatus(c.Request.Context(), effectiveBranch(c), memberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Status retrieved", resp, nil)
}

func (h *Handler) MyHistory(c *gin.Context) {
	p, _ := identity.FromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	resp, err := h.service.MemberHistory(c.Request.Context(), effectiveBranch(c), p.MemberID, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance history retrieved", resp, nil)
}

func (h *Handler) MyToday(c *gin.Context) {
	p, _ := identity.FromContext(c)

	resp, err := h.service.MemberToday(c.Request.Context(), effectiveBranch(c), p.MemberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Today's attendance retrieved", resp, nil)
}

func (h *Handler) MyStatus(c *gin.Context) {
	p, _ := identity.FromContext(c)

	resp, err := h.service.CurrentStatus(c.Request.Context(), p.BranchID, p.MemberID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Status retrieved", resp, nil)
}

func (h *Handler) Statistics(c *gin.Context) {
	now := time.Now().UTC()
	start := now
	end := now
	if raw := c.Query("startDate"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			start = d
		}
	}
	if raw := c.Query("endDate"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			end = d
		}
	}

	resp, err := h.service.Statistics(c.Request.Context(), effectiveBranch(c), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Statistics retrieved", resp, nil)
}
