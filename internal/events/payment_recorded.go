package events

import "time"

const PaymentRecordedTopic = "gym.payment.recorded.v1"

type PaymentRecordedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PaymentID  string    `json:"payment_id"`
	InvoiceID  string    `json:"invoice_id,omitempty"`
	MemberID   string    `json:"member_id"`
	BranchID   string    `json:"branch_id"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
