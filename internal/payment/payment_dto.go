package payment

type RecordPaymentRequest struct {
	MemberID  string  `json:"memberId" binding:"required,uuid"`
	InvoiceID string  `json:"invoiceId" binding:"omitempty,uuid"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required,oneof=cash card transfer"`
	Reference string  `json:"reference"`
}

type PaymentResponse struct {
	ID         string  `json:"id"`
	BranchID   string  `json:"branchId"`
	MemberID   string  `json:"memberId"`
	InvoiceID  string  `json:"invoiceId,omitempty"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	Reference  string  `json:"reference,omitempty"`
	RecordedBy string  `json:"recordedBy"`
	PaidAt     string  `json:"paidAt"`
}
