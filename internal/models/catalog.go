package models

// Category groups products on the storefront. Categories are deactivated,
// never deleted.
type Category struct {
	BaseModel
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `gorm:"default:true" json:"active"`
	Thumbnail   string    `json:"thumbnail"`
	ThumbnailID string    `json:"thumbnailId"`
	Products    []Product `json:"Products,omitempty"`
}

// Size is a size label offered for a product.
type Size struct {
	BaseModel
	ProductID string `gorm:"type:varchar(36);index;not null" json:"productId"`
	Size      string `gorm:"not null" json:"size"`
}

// TableImage is a measurement table picture attached to a product.
type TableImage struct {
	BaseModel
	ProductID string `gorm:"type:varchar(36);index;not null" json:"productId"`
	Image     string `json:"image"`
	ImageID   string `json:"imageId"`
}

// ModelingEntry describes a garment modeling option with an illustration.
type ModelingEntry struct {
	BaseModel
	ProductID   string `gorm:"type:varchar(36);index;not null" json:"productId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ImageID     string `json:"imageId"`
}

// CatalogImage is a gallery picture of a product.
type CatalogImage struct {
	BaseModel
	ProductID string `gorm:"type:varchar(36);index;not null" json:"productId"`
	Image     string `json:"image"`
	ImageID   string `json:"imageId"`
}
