package user

type UserResponse struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"external_id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	VendorID   *string `json:"vendor_id"`
	Department *string `json:"department"`
	ManagerID  *string `json:"manager_id"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
}

type ListUsersQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=CONTRACTOR MANAGER ADMIN"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// UpdateMeRequest is what a user may change about themself. Email belongs to
// the identity provider.
type UpdateMeRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
}

// AdminUpdateUserRequest is the allow-listed admin patch. Nil fields are left
// alone; an empty string clears vendor_id, department or manager_id.
type AdminUpdateUserRequest struct {
	Role       *string `json:"role" binding:"omitempty,oneof=CONTRACTOR MANAGER ADMIN"`
	VendorID   *string `json:"vendor_id" binding:"omitempty,max=100"`
	FullName   *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	ManagerID  *string `json:"manager_id"`
	IsActive   *bool   `json:"is_active"`
}
