package category

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	// IsChargeable defaults to true when omitted.
	IsChargeable *bool `json:"is_chargeable"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	IsChargeable *bool   `json:"is_chargeable"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsChargeable bool   `json:"is_chargeable"`
}
