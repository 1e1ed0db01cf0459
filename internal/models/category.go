package models

import "time"

// Category groups posts under a slug-addressable topic. An unpublished
// category hides every post that references it from public listings.
//
// Categories are hard-deleted; deleting one nulls out post references
// instead of cascading (see CategoryRepository.Delete).
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Description string    `json:"description"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Posts       []Post    `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}
