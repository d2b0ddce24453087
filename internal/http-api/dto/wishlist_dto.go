package dto

import (
	"time"

	"brickhub/internal/http-api/models"
)

// AddToWishlistRequest: payload to add a set to the wishlist
type AddToWishlistRequest struct {
	SetNum string `json:"set_num" binding:"required"`
}

// WishlistEntryResponse: response for one wishlisted set
type WishlistEntryResponse struct {
	SetNum  string      `json:"set_num"`
	Set     *models.Set `json:"set,omitempty"`
	AddedAt time.Time   `json:"added_at"`
}

// WishlistListResponse: list of wishlisted sets
type WishlistListResponse struct {
	Items []WishlistEntryResponse `json:"items"`
	Total int                     `json:"total"`
}
