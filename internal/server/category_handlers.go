package server

import (
	"chronicle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
// @Summary List categories
// @Description Published categories for navigation
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.listingService.Categories(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return c.JSON(categories)
}

// GetCategoryPosts handles GET /api/categories/:slug/posts
// @Summary List posts in a category
// @Description Paginated visible posts in a published category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} object{category=models.Category,posts=models.Page[models.Post]}
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug}/posts [get]
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	category, page, err := s.listingService.CategoryFeed(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"posts":    page,
	})
}
