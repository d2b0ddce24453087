package dto

// UpdateMinifigRequest: payload for a manual owned-count correction.
// Negative quantities are clamped to zero, zero removes the ledger row.
type UpdateMinifigRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// MinifigQuantityInput: one figure of a batch correction
type MinifigQuantityInput struct {
	FigNum   string `json:"fig_num" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

// BatchUpdateMinifigsRequest: payload to correct several figures at once
type BatchUpdateMinifigsRequest struct {
	Figures []MinifigQuantityInput `json:"figures" binding:"required,min=1,dive"`
}

// MinifigStatusResponse: owned vs required counts for one figure of a set
type MinifigStatusResponse struct {
	FigNum   string `json:"fig_num"`
	Name     string `json:"name"`
	Owned    int    `json:"owned"`
	Required int    `json:"required"`
}

// MinifigListResponse: per-figure status of one owned set
type MinifigListResponse struct {
	SetNum string                  `json:"set_num"`
	Items  []MinifigStatusResponse `json:"items"`
	Total  int                     `json:"total"`
}

// UpdateMinifigResponse: result of a single manual correction
type UpdateMinifigResponse struct {
	FigNum   string `json:"fig_num"`
	Owned    int    `json:"owned"`
	Required int    `json:"required"`
}

// BatchUpdateResponse: per-item outcome of a batch correction
type BatchUpdateResponse struct {
	Updated int               `json:"updated"`
	Errors  map[string]string `json:"errors,omitempty"`
}
