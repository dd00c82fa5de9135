package invoice

type CreateInvoiceRequest struct {
	MemberID string  `json:"memberId" binding:"required,uuid"`
	PlanID   string  `json:"planId" binding:"omitempty,uuid"`
	Amount   float64 `json:"amount" binding:"required,gte=0"`
	DueDate  string  `json:"dueDate" binding:"required"`
}

type InvoiceResponse struct {
	ID            string  `json:"id"`
	BranchID      string  `json:"branchId"`
	MemberID      string  `json:"memberId"`
	PlanID        string  `json:"planId,omitempty"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	IssuedAt      string  `json:"issuedAt"`
	DueDate       string  `json:"dueDate"`
	PaidAt        *string `json:"paidAt,omitempty"`
}
