package domain

// EnforceRequest asks whether a role may perform action on resource.
type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Resources and actions checked by the route layer.
const (
	ResourceLeave     = "leave"
	ResourceCategory  = "category"
	ResourceUser      = "user"
	ResourceAudit     = "audit"
	ResourceFinance   = "finance"
	ResourceDocument  = "document"
	ActionCreate      = "create"
	ActionRead        = "read"
	ActionReadAll     = "read_all"
	ActionUpdate      = "update"
	ActionProcess     = "process"
	ActionManage      = "manage"
	ActionSyncRetry   = "sync_retry"
	ActionReadHistory = "read_history"
)
