package server

import (
	"net/http"
	"testing"
	"time"

	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCategories_OnlyPublished(t *testing.T) {
	s, db := setupTestServer(t)
	seedCategory(t, db, "go", true)
	seedCategory(t, db, "secret", false)

	app := fiber.New()
	app.Get("/categories", s.GetCategories)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/categories", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []*models.Category
	decodeJSON(t, resp, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "go", categories[0].Slug)
}

func TestGetCategoryPosts(t *testing.T) {
	s, db := setupTestServer(t)
	author := seedUser(t, db, "alice")
	category := seedCategory(t, db, "go", true)
	hidden := seedCategory(t, db, "secret", false)
	now := time.Now().UTC()

	post := seedPost(t, db, author, now.Add(-time.Hour), true)
	require.NoError(t, db.Model(post).Update("category_id", category.ID).Error)
	other := seedPost(t, db, author, now.Add(-2*time.Hour), true)
	require.NoError(t, db.Model(other).Update("category_id", hidden.ID).Error)

	app := fiber.New()
	app.Get("/categories/:slug/posts", s.GetCategoryPosts)

	t.Run("published category lists its posts", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/categories/go/posts", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Category models.Category            `json:"category"`
			Posts    models.Page[*models.Post] `json:"posts"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, "go", body.Category.Slug)
		require.Len(t, body.Posts.Items, 1)
		assert.Equal(t, post.ID, body.Posts.Items[0].ID)
	})

	t.Run("unpublished category is not found", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/categories/secret/posts", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/categories/nope/posts", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
