package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog publication in the Chronicle application.
//
// Whether a post is publicly visible is a pure function of IsPublished,
// PubDate and the referenced category's published flag, evaluated at query
// time. It is never cached or materialized as stored state.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ImageURL    string    `json:"image_url,omitempty"`
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"`
	IsPublished bool      `gorm:"not null;default:true" json:"is_published"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	LocationID  *uint     `json:"location_id,omitempty"`
	Location    *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsPubliclyVisible reports whether the post may be shown to anonymous
// viewers at the given instant: it must be published, its publication date
// must not be in the future, and its category (if any) must be published.
//
// A future-dated post is invisible regardless of IsPublished. The method
// relies on Category being preloaded whenever CategoryID is set.
func (p *Post) IsPubliclyVisible(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil {
		return p.Category != nil && p.Category.IsPublished
	}
	return true
}

// CanView reports whether the given viewer may see the post: either it is
// publicly visible, or the viewer is its author. Authors see their own
// drafts and future-dated posts. A zero viewer ID means anonymous.
func (p *Post) CanView(viewerID uint, now time.Time) bool {
	if p.IsPubliclyVisible(now) {
		return true
	}
	return viewerID != 0 && viewerID == p.AuthorID
}
