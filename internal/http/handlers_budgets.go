package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"family-budget-go/internal/models"
	"family-budget-go/internal/services"
)

// GET /v1/budgets
func (s *Server) listBudgets(c *gin.Context) {
	teamID, _ := currentIDs(c)

	budgets, err := s.budgets.List(c.Request.Context(), teamID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, budgets)
}

// POST /v1/budgets
func (s *Server) createBudget(c *gin.Context) {
	teamID, _ := currentIDs(c)

	var req struct {
		CategoryID uint    `json:"category_id" binding:"required"`
		Amount     float64 `json:"amount"`
		Period     string  `json:"period" binding:"required"`
		StartDate  string  `json:"start_date" binding:"required"`
		EndDate    *string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(400, gin.H{"error": "validation_failed", "field": "start_date", "detail": "expected YYYY-MM-DD"})
		return
	}
	in := services.BudgetInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     models.BudgetPeriod(req.Period),
		StartDate:  start,
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "validation_failed", "field": "end_date", "detail": "expected YYYY-MM-DD"})
			return
		}
		in.EndDate = &end
	}

	b, err := s.budgets.Create(c.Request.Context(), teamID, in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(201, b)
}

// PATCH /v1/budgets/:id
func (s *Server) updateBudget(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Amount  *float64 `json:"amount"`
		Period  *string  `json:"period"`
		EndDate *string  `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	patch := services.BudgetPatch{Amount: req.Amount}
	if req.Period != nil {
		p := models.BudgetPeriod(*req.Period)
		patch.Period = &p
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "validation_failed", "field": "end_date", "detail": "expected YYYY-MM-DD"})
			return
		}
		patch.EndDate = &end
	}

	b, err := s.budgets.Update(c.Request.Context(), teamID, id, patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, b)
}

// DELETE /v1/budgets/:id
func (s *Server) deactivateBudget(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.budgets.Deactivate(c.Request.Context(), teamID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "budget deactivated"})
}
