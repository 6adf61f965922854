package model

import "time"

// Category groups posts by topic. Referenced by posts many-to-many.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:32;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
