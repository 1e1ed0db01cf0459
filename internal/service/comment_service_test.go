package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publicPost(authorID uint) *models.Post {
	return &models.Post{
		ID:          1,
		AuthorID:    authorID,
		IsPublished: true,
		PubDate:     time.Now().UTC().Add(-time.Hour),
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.CreateComment(ctx, CreateCommentInput{PostID: 1, Content: "hi"})
		assertErrorCode(t, err, models.CodeUnauthenticated)
	})

	t.Run("success on a visible post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return publicPost(5), nil
		}
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 42
			return nil
		}
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Content: "hi", AuthorID: 2, PostID: 1}, nil
		}

		svc := NewCommentService(commentRepo, postRepo)
		comment, err := svc.CreateComment(ctx, CreateCommentInput{Principal: 2, PostID: 1, Content: "hi"})
		require.NoError(t, err)
		assert.Equal(t, uint(42), comment.ID)
	})

	t.Run("no commenting on hidden posts, not even by the author", func(t *testing.T) {
		t.Parallel()
		draft := &models.Post{ID: 1, AuthorID: 5, IsPublished: false, PubDate: time.Now().UTC().Add(-time.Hour)}
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return draft, nil
		}

		svc := NewCommentService(noopCommentRepo(), postRepo)
		_, err := svc.CreateComment(ctx, CreateCommentInput{Principal: 5, PostID: 1, Content: "hi"})
		assertErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("content validation", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return publicPost(5), nil
		}
		svc := NewCommentService(noopCommentRepo(), postRepo)

		_, err := svc.CreateComment(ctx, CreateCommentInput{Principal: 2, PostID: 1})
		assertErrorCode(t, err, models.CodeValidation)

		_, err = svc.CreateComment(ctx, CreateCommentInput{
			Principal: 2,
			PostID:    1,
			Content:   strings.Repeat("x", 10001),
		})
		assertErrorCode(t, err, models.CodeValidation)
	})
}

func TestCommentService_ListComments_Visibility(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	draft := &models.Post{ID: 1, AuthorID: 5, IsPublished: false, PubDate: time.Now().UTC().Add(-time.Hour)}
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return draft, nil
	}
	commentRepo := noopCommentRepo()
	commentRepo.listByPostFn = func(_ context.Context, _ uint) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 1}}, nil
	}
	svc := NewCommentService(commentRepo, postRepo)

	// The author still reads comments on their own draft.
	comments, err := svc.ListComments(ctx, 5, 1)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	_, err = svc.ListComments(ctx, 2, 1)
	assertErrorCode(t, err, models.CodeNotFound)

	_, err = svc.ListComments(ctx, 0, 1)
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestCommentService_UpdateComment_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 10}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(ctx, UpdateCommentInput{Principal: 1, CommentID: 1, Content: "new"})
		assertErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("anonymous is unauthenticated before ownership", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), noopPostRepo())
		_, err := svc.UpdateComment(ctx, UpdateCommentInput{CommentID: 1, Content: "new"})
		assertErrorCode(t, err, models.CodeUnauthenticated)
	})

	t.Run("owner can update", func(t *testing.T) {
		t.Parallel()
		storedContent := "old"
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, AuthorID: 1, Content: storedContent}, nil
		}
		commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
			storedContent = c.Content
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		comment, err := svc.UpdateComment(ctx, UpdateCommentInput{Principal: 1, CommentID: 1, Content: "updated"})
		require.NoError(t, err)
		assert.Equal(t, "updated", comment.Content)
	})
}

func TestCommentService_DeleteComment_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return &models.Comment{ID: 1, AuthorID: 5}, nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo())

	assertErrorCode(t, svc.DeleteComment(ctx, 0, 1), models.CodeUnauthenticated)
	assertErrorCode(t, svc.DeleteComment(ctx, 2, 1), models.CodeForbidden)
	require.NoError(t, svc.DeleteComment(ctx, 5, 1))
}
