package events

import "time"

const MemberRegisteredTopic = "gym.member.lifecycle.v1"

type MemberRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	MemberID   string    `json:"member_id"`
	BranchID   string    `json:"branch_id"`
	PlanID     string    `json:"plan_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
