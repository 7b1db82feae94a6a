package audit

type ListAuditLogsQuery struct {
	ActorID string `form:"actor_id"`
	LeaveID string `form:"leave_id"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ActorSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AuditLogResponse struct {
	ID             string        `json:"id"`
	LeaveRequestID *string       `json:"leave_request_id"`
	ActorUserID    string        `json:"actor_user_id"`
	Actor          *ActorSummary `json:"actor,omitempty"`
	Action         string        `json:"action"`
	FieldChanged   *string       `json:"field_changed"`
	OldValue       *string       `json:"old_value"`
	NewValue       *string       `json:"new_value"`
	Timestamp      string        `json:"timestamp"`
}
