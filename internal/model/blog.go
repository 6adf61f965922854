package model

import "time"

// Blog represents a published post. Slug is derived from the title at
// creation and stays fixed for the life of the post, even across title edits.
type Blog struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" gorm:"size:160;not null"`
	Slug      string `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Body      string `json:"body,omitempty" gorm:"type:longtext;not null"`
	Excerpt   string `json:"excerpt" gorm:"size:400"`
	MetaTitle string `json:"mtitle" gorm:"column:mtitle;size:255"`
	MetaDesc  string `json:"mdesc" gorm:"column:mdesc;size:255"`

	// Photo is stored inline next to the metadata, as the original platform
	// does. It is only ever served through the photo endpoint.
	Photo     []byte `json:"-" gorm:"type:mediumblob"`
	PhotoType string `json:"-" gorm:"size:64"`

	PostedByID uint       `json:"-" gorm:"index;not null"`
	PostedBy   *User      `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:blog_categories;"`
	Tags       []Tag      `json:"tags,omitempty" gorm:"many2many:blog_tags;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPhoto reports whether a photo blob is stored for the post.
func (b *Blog) HasPhoto() bool {
	return len(b.Photo) > 0
}
