package models

import "github.com/shopspring/decimal"

// Product is a sellable item. It owns sizes, table images, modeling entries
// and catalog images keyed by its id.
type Product struct {
	BaseModel
	Name             string          `gorm:"not null" json:"name"`
	CategoryID       string          `gorm:"type:varchar(36);index" json:"categoryId"`
	Category         *Category       `json:"category,omitempty"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Video            string          `json:"video,omitempty"`
	Active           bool            `gorm:"default:true" json:"active"`
	Thumbnail        string          `json:"thumbnail"`
	ThumbnailID      string          `json:"thumbnailId"`
	Sizes            []Size          `json:"sizes,omitempty"`
}
