package member

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

func (h *Handler) Register(c *gin.Context) {
	var req CreateMemberRequest
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

	resp, err := h.service.Register(c.Request.Context(), branchID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Member registered", resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), requestBranch(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Members retrieved", resp, nil)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context(), requestBranch(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Member options retrieved", resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	decision, _ := policy.DecisionFromContext(c)
	if decision.SelfOnly {
		p, _ := identity.FromContext(c)
		if c.Param("id") != p.MemberID {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own profile", nil)
			return
		}
	}

	resp, err := h.service.GetByID(c.Request.Context(), requestBranch(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Member retrieved", resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	p, _ := identity.FromContext(c)
	if p.MemberID == "" {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Only members have a member profile", nil)
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), p.MemberID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), requestBranch(c), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Member updated", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), requestBranch(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Member deleted", nil, nil)
}
