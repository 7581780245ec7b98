package models

import "github.com/example/backoffice/internal/status"

// Banner is a storefront banner tied to the page it is displayed on.
type Banner struct {
	BaseModel
	Banner   string              `json:"banner"`
	BannerID string              `json:"bannerId"`
	Origin   status.BannerOrigin `gorm:"type:varchar(16);index" json:"origin"`
	Redirect string              `json:"redirect,omitempty"`
}
