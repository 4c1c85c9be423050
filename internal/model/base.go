package model

import (
	"time"

	"gorm.io/gorm"
)

// Base is embedded by every soft-deletable entity. A row is active while
// DeletedAt is null; soft deletion only stamps DeletedAt.
type Base struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b Base) IsDeleted() bool {
	return b.DeletedAt.Valid
}
