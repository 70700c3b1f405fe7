package models

import (
	"time"

	"gorm.io/gorm"
)

// Base replaces gorm.Model so that records serialize with camelCase keys.
type Base struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
