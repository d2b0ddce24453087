package models

// Catalog reference data. These tables are loaded by cmd/catalog-import from the
// Rebrickable CSV dumps and are read-only as far as the API is concerned.

type Set struct {
	SetNum   string  `gorm:"primaryKey;size:20" json:"set_num"`
	Name     string  `gorm:"not null;index" json:"name"`
	Year     int     `json:"year"`
	ThemeID  int     `gorm:"index" json:"theme_id"`
	NumParts int     `json:"num_parts"`
	ImgURL   *string `json:"img_url,omitempty"`
}

func (Set) TableName() string {
	return "sets"
}

type Minifig struct {
	FigNum   string  `gorm:"primaryKey;size:20" json:"fig_num"`
	Name     string  `gorm:"not null" json:"name"`
	NumParts int     `json:"num_parts"`
	ImgURL   *string `json:"img_url,omitempty"`
}

func (Minifig) TableName() string {
	return "minifigs"
}

type Inventory struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	SetNum  string `gorm:"not null;index" json:"set_num"`
	Version int    `gorm:"not null;default:1" json:"version"`

	Set *Set `gorm:"foreignKey:SetNum" json:"set,omitempty"`
}

func (Inventory) TableName() string {
	return "inventories"
}

type InventoryMinifig struct {
	InventoryID int64  `gorm:"primaryKey;autoIncrement:false" json:"inventory_id"`
	FigNum      string `gorm:"primaryKey;size:20" json:"fig_num"`
	Quantity    int    `gorm:"not null" json:"quantity"`

	Minifig *Minifig `gorm:"foreignKey:FigNum" json:"minifig,omitempty"`
}

func (InventoryMinifig) TableName() string {
	return "inventory_minifigs"
}

// SetFigure is one row of a set's minifigure composition: how many copies of a
// figure one sealed copy of the set contains. Not a table, a query result.
type SetFigure struct {
	FigNum   string `json:"fig_num"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
