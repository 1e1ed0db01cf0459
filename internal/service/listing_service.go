package service

import (
	"context"
	"time"

	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/repository"
)

// ListingService builds paginated feeds. All feeds order by pub_date
// descending and clamp out-of-range page numbers instead of erroring.
type ListingService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	pageSize     int
	now          func() time.Time
}

func NewListingService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	pageSize int,
) *ListingService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ListingService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

func (s *ListingService) page(
	scope string,
	page int,
	list func(limit, offset int) ([]*models.Post, int64, error),
) (*models.Page[*models.Post], error) {
	start := time.Now()
	defer func() {
		middleware.ListingDuration.WithLabelValues(scope).Observe(time.Since(start).Seconds())
	}()

	if page < 1 {
		page = 1
	}

	posts, total, err := list(s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}

	// A page past the end clamps to the last valid page rather than
	// returning an empty slice.
	clamped := models.ClampPage(page, total, s.pageSize)
	if clamped != page {
		page = clamped
		posts, total, err = list(s.pageSize, (page-1)*s.pageSize)
		if err != nil {
			return nil, err
		}
	}

	return models.NewPage(posts, page, s.pageSize, total), nil
}

// Feed lists publicly visible posts across all categories.
func (s *ListingService) Feed(ctx context.Context, page int) (*models.Page[*models.Post], error) {
	now := s.now().UTC()
	return s.page("feed", page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListVisible(ctx, now, limit, offset)
	})
}

// CategoryFeed lists visible posts in a published category. Unpublished
// and unknown slugs both resolve to NOT_FOUND.
func (s *ListingService) CategoryFeed(ctx context.Context, slug string, page int) (*models.Category, *models.Page[*models.Post], error) {
	category, err := s.categoryRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	feed, err := s.page("category", page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByCategory(ctx, category.ID, now, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return category, feed, nil
}

// Profile lists a user's posts. The profile owner sees every post,
// including drafts and scheduled ones; everyone else sees only what is
// publicly visible.
func (s *ListingService) Profile(ctx context.Context, viewerID uint, username string, page int) (*models.User, *models.Page[*models.Post], error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	visibleOnly := viewerID != user.ID
	now := s.now().UTC()
	feed, err := s.page("profile", page, func(limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByAuthor(ctx, user.ID, visibleOnly, now, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return user, feed, nil
}

// Categories lists published categories for navigation.
func (s *ListingService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListPublished(ctx)
}
