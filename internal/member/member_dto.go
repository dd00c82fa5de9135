package member

type CreateMemberRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	MemberNumber string `json:"memberNumber"`
	PlanID       string `json:"planId" binding:"omitempty,uuid"`
	JoinDate     string `json:"joinDate"`
}

type UpdateMemberRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	PlanID    string `json:"planId" binding:"omitempty,uuid"`
	Status    string `json:"status" binding:"omitempty,oneof=active suspended expired"`
}

type MemberResponse struct {
	ID            string `json:"id"`
	BranchID      string `json:"branchId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName,omitempty"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	MemberNumber  string `json:"memberNumber"`
	PlanID        string `json:"planId,omitempty"`
	PlanName      string `json:"planName,omitempty"`
	PlanExpiresAt string `json:"planExpiresAt,omitempty"`
	Status        string `json:"status"`
	JoinDate      string `json:"joinDate"`
}
