package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ProfileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	BranchID string `json:"branchId,omitempty"`
	StaffID  string `json:"staffId,omitempty"`
	MemberID string `json:"memberId,omitempty"`
	IsActive bool   `json:"isActive"`
}

type LoginResponse struct {
	User   ProfileResponse `json:"user"`
	Tokens TokenPair       `json:"tokens"`
}
