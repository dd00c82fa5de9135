package payment

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

func (h *Handler) Record(c *gin.Context) {
	var req RecordPaymentRequest
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

	p, _ := identity.FromContext(c)

	resp, err := h.service.Record(c.Request.Context(), branchID, p.UserID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Payment recorded", resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	decision, _ := policy.DecisionFromContext(c)
	if decision.SelfOnly {
		p, _ := identity.FromContext(c)
		if p.MemberID == "" {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Only members have payments", nil)
			return
		}

		resp, err := h.service.GetByMember(c.Request.Context(), p.MemberID)
		if err != nil {
			writeError(c, err)
			return
		}

		response.Success(c, http.StatusOK, "Payments retrieved", resp, nil)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), requestBranch(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payments retrieved", resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), requestBranch(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	decision, _ := policy.DecisionFromContext(c)
	if decision.SelfOnly {
		p, _ := identity.FromContext(c)
		if resp.MemberID != p.MemberID {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own payments", nil)
			return
		}
	}

	response.Success(c, http.StatusOK, "Payment retrieved", resp, nil)
}

func (h *Handler) MyPayments(c *gin.Context) {
	p, _ := identity.FromContext(c)
	if p.MemberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Only members have payments", nil)
		return
	}

	resp, err := h.service.GetByMember(c.Request.Context(), p.MemberID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Payments retrieved", resp, nil)
}
