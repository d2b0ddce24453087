package dto

import (
	"time"

	"brickhub/internal/http-api/models"
)

// SetQuantityInput: one set of an add-to-collection batch
type SetQuantityInput struct {
	SetNum   string `json:"set_num" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// AddSetsRequest: payload to add sets to the collection
type AddSetsRequest struct {
	Sets []SetQuantityInput `json:"sets" binding:"required,min=1,dive"`
}

// UpdateQuantityRequest: payload to change an owned-set quantity.
// Zero removes the set from the collection.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCountRequest: payload for the complete-count / sealed-count endpoints.
// Out-of-range values are clamped, not rejected.
type UpdateCountRequest struct {
	Count *int `json:"count" binding:"required"`
}

// ToggleRequest: payload for the complete / sealed toggle endpoints
type ToggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// CollectionEntryResponse: response for one owned set
type CollectionEntryResponse struct {
	SetNum        string      `json:"set_num"`
	Quantity      int         `json:"quantity"`
	CompleteCount int         `json:"complete_count"`
	SealedCount   int         `json:"sealed_count"`
	Set           *models.Set `json:"set,omitempty"`
	AddedAt       time.Time   `json:"added_at"`
}

// CollectionListResponse: list of owned sets
type CollectionListResponse struct {
	Items []CollectionEntryResponse `json:"items"`
	Total int                       `json:"total"`
}

// FromCollectionEntry converts a model row to its response shape
func FromCollectionEntry(entry models.CollectionEntry) CollectionEntryResponse {
	return CollectionEntryResponse{
		SetNum:        entry.SetNum,
		Quantity:      entry.Quantity,
		CompleteCount: entry.CompleteCount,
		SealedCount:   entry.SealedCount,
		Set:           entry.Set,
		AddedAt:       entry.AddedAt,
	}
}
