package model

import "time"

// Tag labels posts. Referenced by posts many-to-many.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:32;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
