// Package models holds the records mirrored from the back-office API. The
// same types back the sandbox server's tables.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides shared columns for all tables.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate ensures ids are issued for new records.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Key returns the record id.
func (b BaseModel) Key() string {
	return b.ID
}

// Message is the body of every mutation response; its text is shown to the
// operator verbatim.
type Message struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
