package staff

type CreateStaffRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Position  string `json:"position" binding:"required,oneof=admin generaltrainer personaltrainer receptionist housekeeping"`
	HireDate  string `json:"hireDate" binding:"required"`
}

type UpdateStaffRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Position  string `json:"position" binding:"required,oneof=admin generaltrainer personaltrainer receptionist housekeeping"`
	Status    string `json:"status" binding:"omitempty,oneof=active terminated"`
}

type StaffResponse struct {
	ID          string `json:"id"`
	BranchID    string `json:"branchId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	StaffNumber string `json:"staffNumber"`
	Position    string `json:"position"`
	HireDate    string `json:"hireDate"`
	Status      string `json:"status"`
}
