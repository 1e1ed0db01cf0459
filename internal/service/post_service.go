package service

import (
	"context"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

const (
	maxTitleLen   = 256
	maxContentLen = 40000
)

type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

type CreatePostInput struct {
	Principal  uint
	Title      string
	Content    string
	ImageURL   string
	PubDate    time.Time
	CategoryID *uint
	LocationID *uint
}

type UpdatePostInput struct {
	Principal  uint
	PostID     uint
	Title      string
	Content    string
	ImageURL   string
	PubDate    time.Time
	CategoryID *uint
	LocationID *uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

func validatePostFields(title, content string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 256 characters)")
	}
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 40000 characters)")
	}
	return nil
}

// CreatePost always attributes the post to the authenticated principal,
// whatever author the request body claimed.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := requireAuthenticated(in.Principal); err != nil {
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	pubDate := in.PubDate
	if pubDate.IsZero() {
		pubDate = s.now().UTC()
	}

	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		PubDate:     pubDate,
		IsPublished: true,
		AuthorID:    in.Principal,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post if the viewer may see it. Posts that exist but
// are hidden from this viewer come back as NOT_FOUND so their existence
// leaks nothing.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanView(viewerID, s.now().UTC()) {
		return nil, models.NewNotFoundError("post", postID)
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := requireAuthenticated(in.Principal); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(in.Principal, post.AuthorID, "You can only edit your own posts"); err != nil {
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	post.ImageURL = in.ImageURL
	if !in.PubDate.IsZero() {
		post.PubDate = in.PubDate
	}
	post.CategoryID = in.CategoryID
	post.LocationID = in.LocationID

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, principal, postID uint) error {
	if err := requireAuthenticated(principal); err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := assertOwner(principal, post.AuthorID, "You can only delete your own posts"); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, postID)
}
