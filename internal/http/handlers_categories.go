package http

import (
	"github.com/gin-gonic/gin"

	"family-budget-go/internal/services"
)

// GET /v1/categories
func (s *Server) listCategories(c *gin.Context) {
	teamID, _ := currentIDs(c)
	includeInactive := c.Query("include_inactive") == "true"

	cats, err := s.categories.List(c.Request.Context(), teamID, includeInactive)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, cats)
}

// POST /v1/categories
func (s *Server) createCategory(c *gin.Context) {
	teamID, _ := currentIDs(c)

	var req struct {
		Name  string `json:"name" binding:"required"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	cat, err := s.categories.Create(c.Request.Context(), teamID, services.CategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(201, cat)
}

// PUT /v1/categories/:id
func (s *Server) updateCategory(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	cat, err := s.categories.Update(c.Request.Context(), teamID, id, services.CategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, cat)
}

// DELETE /v1/categories/:id
func (s *Server) deactivateCategory(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.categories.Deactivate(c.Request.Context(), teamID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "category deactivated"})
}
