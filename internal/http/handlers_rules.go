package http

import (
	"github.com/gin-gonic/gin"

	"family-budget-go/internal/models"
	"family-budget-go/internal/services"
)

// GET /v1/rules
func (s *Server) listRules(c *gin.Context) {
	teamID, _ := currentIDs(c)

	rules, err := s.rules.List(c.Request.Context(), teamID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, rules)
}

// POST /v1/rules
func (s *Server) createRule(c *gin.Context) {
	teamID, _ := currentIDs(c)

	var req struct {
		Name       string `json:"name"`
		Field      string `json:"field" binding:"required"`
		MatchText  string `json:"match_text" binding:"required"`
		CategoryID uint   `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	r, err := s.rules.Create(c.Request.Context(), teamID, services.RuleInput{
		Name:       req.Name,
		Field:      models.RuleField(req.Field),
		MatchText:  req.MatchText,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(201, r)
}

// PATCH /v1/rules/:id
func (s *Server) updateRule(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Name       *string `json:"name"`
		Field      *string `json:"field"`
		MatchText  *string `json:"match_text"`
		CategoryID *uint   `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	patch := services.RulePatch{
		Name:       req.Name,
		MatchText:  req.MatchText,
		CategoryID: req.CategoryID,
	}
	if req.Field != nil {
		f := models.RuleField(*req.Field)
		patch.Field = &f
	}

	r, err := s.rules.Update(c.Request.Context(), teamID, id, patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, r)
}

// DELETE /v1/rules/:id
func (s *Server) deactivateRule(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.rules.Deactivate(c.Request.Context(), teamID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "rule deactivated"})
}
