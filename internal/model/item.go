package model

import "time"

// Item represents one tracked physical object. The item ID is an opaque
// UUID assigned at creation and never changes.
type Item struct {
	ItemID         string    `json:"item_id"`
	UserID         int64     `json:"-"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Brand          string    `json:"brand,omitempty"`
	PartNumber     string    `json:"part_number,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
	Quantity       int       `json:"quantity"`
	Location       string    `json:"location"`
	ImageMime      string    `json:"image_mime,omitempty"`
	Barcode        string    `json:"barcode,omitempty"`
	PurchaseSource string    `json:"purchase_source,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExtractedItem is a candidate item produced by photo extraction or a
// barcode lookup, before the user confirms it into the inventory.
type ExtractedItem struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	PartNumber  string   `json:"part_number,omitempty"`
	Quantity    int      `json:"quantity"`
	Location    string   `json:"location,omitempty"`
	Barcode     string   `json:"barcode,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// ItemUpdate holds a partial item update. Nil fields are left unchanged.
type ItemUpdate struct {
	Name           *string   `json:"name,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Subcategory    *string   `json:"subcategory,omitempty"`
	Brand          *string   `json:"brand,omitempty"`
	PartNumber     *string   `json:"part_number,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	Quantity       *int      `json:"quantity,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Barcode        *string   `json:"barcode,omitempty"`
	PurchaseSource *string   `json:"purchase_source,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Subcategory == nil &&
		u.Brand == nil && u.PartNumber == nil && u.Tags == nil &&
		u.Quantity == nil && u.Location == nil && u.Barcode == nil &&
		u.PurchaseSource == nil && u.Notes == nil
}
