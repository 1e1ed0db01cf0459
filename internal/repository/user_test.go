package repository

import (
	"context"
	"testing"

	"chronicle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")

	user, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	requireAppErrorCode(t, err, models.CodeNotFound)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "alice")

	user, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	// A miss is not an error here, callers treat nil as "available".
	user, err = repo.GetByEmail(ctx, "free@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	user.DisplayName = "Alice A."
	user.Bio = "writes about Go"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", got.DisplayName)
	assert.Equal(t, "writes about Go", got.Bio)
}
