package leave

const DateLayout = "2006-01-02"

type CreateLeaveRequest struct {
	CategoryID    string  `json:"category_id" binding:"required,uuid"`
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	TotalDays     float64 `json:"total_days" binding:"required,gt=0"`
	Reason        string  `json:"reason" binding:"max=2000"`
	AttachmentURL *string `json:"attachment_url" binding:"omitempty,url"`
}

// UpdateLeaveRequest is the owner's partial edit. Only the listed fields can
// change and nil means untouched.
type UpdateLeaveRequest struct {
	CategoryID    *string  `json:"category_id" binding:"omitempty,uuid"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	TotalDays     *float64 `json:"total_days" binding:"omitempty,gt=0"`
	Reason        *string  `json:"reason" binding:"omitempty,max=2000"`
	AttachmentURL *string  `json:"attachment_url" binding:"omitempty,url"`
}

func (r UpdateLeaveRequest) IsEmpty() bool {
	return r.CategoryID == nil && r.StartDate == nil && r.EndDate == nil &&
		r.TotalDays == nil && r.Reason == nil && r.AttachmentURL == nil
}

type ProcessLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListLeavesQuery struct {
	Status     string `form:"status"`
	UserID     string `form:"user_id"`
	Department string `form:"department"`
	ManagerID  string `form:"manager_id"`
	Mine       bool   `form:"mine"`
	Offset     int    `form:"offset" binding:"min=0"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type LeaveOwnerResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	VendorID *string `json:"vendor_id,omitempty"`
}

type LeaveCategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsChargeable bool   `json:"is_chargeable"`
}

type LeaveResponse struct {
	ID                     string                 `json:"id"`
	ReferenceNo            string                 `json:"reference_no"`
	UserID                 string                 `json:"user_id"`
	CategoryID             string                 `json:"category_id"`
	StartDate              string                 `json:"start_date"`
	EndDate                string                 `json:"end_date"`
	TotalDays              float64                `json:"total_days"`
	Reason                 string                 `json:"reason"`
	AttachmentURL          *string                `json:"attachment_url,omitempty"`
	Status                 string                 `json:"status"`
	CachedChargeableStatus bool                   `json:"cached_chargeable_status"`
	ExternalSyncStatus     string                 `json:"external_sync_status"`
	ExternalReferenceID    *string                `json:"external_reference_id,omitempty"`
	ProcessedBy            *string                `json:"processed_by,omitempty"`
	ApprovedAt             *string                `json:"approved_at,omitempty"`
	CreatedAt              string                 `json:"created_at"`
	User                   *LeaveOwnerResponse    `json:"user,omitempty"`
	Category               *LeaveCategoryResponse `json:"category,omitempty"`
}
