package server

import (
	"net/http"
	"testing"

	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "SecurePass12!@"

func TestSignup(t *testing.T) {
	s, db := setupTestServer(t)
	app := fiber.New()
	app.Post("/signup", s.Signup)

	t.Run("success returns token and user", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/signup", fiber.Map{
			"username": "alice",
			"email":    "alice@example.com",
			"password": testPassword,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeJSON(t, resp, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "alice", body.User.Username)

		// The stored password is a hash, not the plaintext.
		var stored models.User
		require.NoError(t, db.First(&stored, body.User.ID).Error)
		assert.NotEqual(t, testPassword, stored.Password)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/signup", fiber.Map{
			"username": "alice",
			"email":    "other@example.com",
			"password": testPassword,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/signup", fiber.Map{
			"username": "bob",
			"email":    "bob@example.com",
			"password": "weak",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	s, db := setupTestServer(t)
	app := fiber.New()
	app.Post("/login", s.Login)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: "alice", Email: "alice@example.com", Password: string(hash)}
	require.NoError(t, db.Create(user).Error)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
			"username": "alice",
			"password": testPassword,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		decodeJSON(t, resp, &body)
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
			"username": "alice",
			"password": "WrongPass12!@",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", fiber.Map{
			"username": "mallory",
			"password": testPassword,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	s, db := setupTestServer(t)
	user := seedUser(t, db, "alice")

	app := fiber.New()
	app.Get("/me", asUser(user.ID), s.Me)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.User
	decodeJSON(t, resp, &body)
	assert.Equal(t, "alice", body.Username)
}
