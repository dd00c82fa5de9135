package user

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
	StaffID  string `json:"staffId" binding:"omitempty,uuid"`
	MemberID string `json:"memberId" binding:"omitempty,uuid"`
}

type UpdateUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type ForceResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UserResponse struct {
	ID        string `json:"id"`
	BranchID  string `json:"branchId,omitempty"`
	StaffID   string `json:"staffId,omitempty"`
	MemberID  string `json:"memberId,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}
