package gymclass

type CreateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TrainerID   string `json:"trainerId" binding:"omitempty,uuid"`
	Capacity    int    `json:"capacity" binding:"required,min=1,max=500"`
	StartsAt    string `json:"startsAt" binding:"required"`
	EndsAt      string `json:"endsAt" binding:"required"`
}

type UpdateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TrainerID   string `json:"trainerId" binding:"omitempty,uuid"`
	Capacity    int    `json:"capacity" binding:"required,min=1,max=500"`
	StartsAt    string `json:"startsAt" binding:"required"`
	EndsAt      string `json:"endsAt" binding:"required"`
	Active      *bool  `json:"active"`
}

type ClassResponse struct {
	ID          string `json:"id"`
	BranchID    string `json:"branchId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TrainerID   string `json:"trainerId,omitempty"`
	Capacity    int    `json:"capacity"`
	Booked      int    `json:"booked"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	Active      bool   `json:"active"`
}

type CreateBookingRequest struct {
	ClassID  string `json:"classId" binding:"required,uuid"`
	MemberID string `json:"memberId" binding:"required,uuid"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	BranchID    string  `json:"branchId"`
	ClassID     string  `json:"classId"`
	MemberID    string  `json:"memberId"`
	Status      string  `json:"status"`
	BookedAt    string  `json:"bookedAt"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
}
