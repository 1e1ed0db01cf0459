package repository

import (
	"context"
	"errors"
	"time"

	"chronicle/internal/cache"
	"chronicle/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
//
// List methods return the page rows together with the total count of rows
// matching the same filter, so callers can clamp page numbers. Rows carry a
// comments_count computed in the same query; callers never iterate comments
// to count them.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, int64, error)
	ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, visibleOnly bool, now time.Time, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// commentCountSelect attaches the comments_count alias in a single
// correlated subquery, avoiding a per-row N+1.
const commentCountSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count"

// visibleScope restricts a post query to rows publicly visible at the given
// instant: published, not future-dated, and either uncategorized or in a
// published category.
func visibleScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.Invalidate(ctx, cache.FeedKey())
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Select(commentCountSelect).
			Preload("Author").
			Preload("Category").
			Preload("Location").
			First(&post, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("post", id)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// feedPage is the cached shape of the public feed's first page.
type feedPage struct {
	Posts []*models.Post `json:"posts"`
	Total int64          `json:"total"`
}

func (r *postRepository) ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]*models.Post, int64, error) {
	filter := func() *gorm.DB {
		return visibleScope(now)(r.db.WithContext(ctx).Model(&models.Post{}))
	}
	// Page 1 carries nearly all feed traffic; it is cached with a short
	// TTL and invalidated on every post or comment write.
	if offset == 0 {
		var page feedPage
		err := cache.Aside(ctx, cache.FeedKey(), &page, cache.FeedTTL, func() error {
			posts, total, err := r.listPage(filter, limit, offset)
			if err != nil {
				return err
			}
			page = feedPage{Posts: posts, Total: total}
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
		return page.Posts, page.Total, nil
	}
	return r.listPage(filter, limit, offset)
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, now time.Time, limit, offset int) ([]*models.Post, int64, error) {
	filter := func() *gorm.DB {
		return visibleScope(now)(r.db.WithContext(ctx).Model(&models.Post{})).
			Where("posts.category_id = ?", categoryID)
	}
	return r.listPage(filter, limit, offset)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, visibleOnly bool, now time.Time, limit, offset int) ([]*models.Post, int64, error) {
	filter := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Post{}).
			Where("posts.author_id = ?", authorID)
		if visibleOnly {
			q = visibleScope(now)(q)
		}
		return q
	}
	return r.listPage(filter, limit, offset)
}

// listPage runs the filter twice: once to count the full result set, once
// to fetch the requested slice with comment counts and preloads. Ordering
// is newest publication first everywhere.
func (r *postRepository) listPage(filter func() *gorm.DB, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	if err := filter().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := filter().
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Save(post).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID)
	}
	return err
}

// Delete removes the post and all of its comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("post", id)
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}
