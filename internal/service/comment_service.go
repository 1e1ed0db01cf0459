package service

import (
	"context"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

type CreateCommentInput struct {
	Principal uint
	PostID    uint
	Content   string
}

type UpdateCommentInput struct {
	Principal uint
	CommentID uint
	Content   string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, now: time.Now}
}

func validateCommentContent(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return nil
}

// ListComments returns the comments on a post the viewer can see. Hidden
// posts resolve to NOT_FOUND for everyone but their author.
func (s *CommentService) ListComments(ctx context.Context, viewerID, postID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.CanView(viewerID, s.now().UTC()) {
		return nil, models.NewNotFoundError("post", postID)
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// CreateComment adds a comment to a publicly visible post. There is no
// author bypass here: nobody comments on drafts or scheduled posts, not
// even their owner.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := requireAuthenticated(in.Principal); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !post.IsPubliclyVisible(s.now().UTC()) {
		return nil, models.NewNotFoundError("post", in.PostID)
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.Principal,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := requireAuthenticated(in.Principal); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(in.Principal, comment.AuthorID, "You can only edit your own comments"); err != nil {
		return nil, err
	}
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, principal, commentID uint) error {
	if err := requireAuthenticated(principal); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := assertOwner(principal, comment.AuthorID, "You can only delete your own comments"); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, commentID)
}
