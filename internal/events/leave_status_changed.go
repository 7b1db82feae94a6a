package events

import "time"

const (
	LeaveStatusChangedTopic     = "leave.status.changed.v1"
	LeaveStatusChangedEventType = "leave.status.changed"
	LeaveAggregateType          = "leave_request"
)

// LeaveStatusChangedEvent is published after a committed workflow transition
// or sync retry.
type LeaveStatusChangedEvent struct {
	EventType          string    `json:"event_type"`
	LeaveID            string    `json:"leave_id"`
	ReferenceNo        string    `json:"reference_no"`
	UserID             string    `json:"user_id"`
	ActorID            string    `json:"actor_id"`
	FromStatus         string    `json:"from_status"`
	ToStatus           string    `json:"to_status"`
	ExternalSyncStatus string    `json:"external_sync_status"`
	OccurredAt         time.Time `json:"occurred_at"`
}
