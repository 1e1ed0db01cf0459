package server

import (
	"chronicle/internal/cache"
	"chronicle/internal/models"
	"chronicle/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:username
// @Summary Get profile
// @Description Public profile for a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	var user models.User
	err := cache.Aside(c.Context(), cache.ProfileKey(username), &user, cache.ProfileTTL, func() error {
		found, err := s.userRepo.GetByUsername(c.Context(), username)
		if err != nil {
			return err
		}
		user = *found
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(&user)
}

// GetUserPosts handles GET /api/users/:username/posts
// @Summary List a user's posts
// @Description Paginated posts by a user; the profile owner also sees drafts and scheduled posts
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number"
// @Success 200 {object} object{user=models.User,posts=models.Page[models.Post]}
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	user, page, err := s.listingService.Profile(c.Context(), principal(c), c.Params("username"), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":  user,
		"posts": page,
	})
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update profile
// @Description Update the authenticated user's profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{display_name=string,bio=string,email=string} true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
		Email       string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		Principal:   principal(c),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Email:       req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	cache.InvalidateProfile(c.Context(), user.Username)
	return c.JSON(user)
}
