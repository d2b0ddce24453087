package models

import "time"

// CollectionEntry is a user's ownership record for a set. complete_count and
// sealed_count never exceed quantity; the service layer clamps them on every
// mutation.
type CollectionEntry struct {
	UserID        string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	SetNum        string    `gorm:"primaryKey;size:20" json:"set_num"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	CompleteCount int       `gorm:"not null;default:0" json:"complete_count"`
	SealedCount   int       `gorm:"not null;default:0" json:"sealed_count"`
	AddedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Set  *Set  `gorm:"foreignKey:SetNum" json:"set,omitempty"`
}

func (CollectionEntry) TableName() string {
	return "collection"
}

// WishlistEntry marks a set a user wants but does not own. Presence only, no
// quantity. A set is never in the wishlist and the collection at the same time.
type WishlistEntry struct {
	UserID  string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	SetNum  string    `gorm:"primaryKey;size:20" json:"set_num"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	Set *Set `gorm:"foreignKey:SetNum" json:"set,omitempty"`
}

func (WishlistEntry) TableName() string {
	return "wishlist"
}

// MinifigOwnership is the per-user per-set per-figure owned count. Rows with a
// zero count are deleted, never stored: absence means zero.
type MinifigOwnership struct {
	UserID        string `gorm:"primaryKey;type:uuid" json:"user_id"`
	SetNum        string `gorm:"primaryKey;size:20" json:"set_num"`
	FigNum        string `gorm:"primaryKey;size:20" json:"fig_num"`
	QuantityOwned int    `gorm:"not null" json:"quantity_owned"`

	Minifig *Minifig `gorm:"foreignKey:FigNum" json:"minifig,omitempty"`
}

func (MinifigOwnership) TableName() string {
	return "minifig_ownership"
}
