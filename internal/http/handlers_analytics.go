package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// monthYear reads month/year query params, defaulting to the current month.
func monthYear(c *gin.Context) (int, time.Month, bool) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 1970 || v > 9999 {
			c.JSON(400, gin.H{"error": "invalid year"})
			return 0, 0, false
		}
		year = v
	}
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			c.JSON(400, gin.H{"error": "invalid month"})
			return 0, 0, false
		}
		month = time.Month(v)
	}
	return year, month, true
}

// GET /v1/analytics/budgets?month=&year=
func (s *Server) budgetAnalytics(c *gin.Context) {
	teamID, _ := currentIDs(c)
	year, month, ok := monthYear(c)
	if !ok {
		return
	}

	report, err := s.analytics.ComputeBudgetAnalytics(c.Request.Context(), teamID, year, month)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, report)
}

// GET /v1/analytics/dashboard?month=&year=
func (s *Server) dashboard(c *gin.Context) {
	teamID, _ := currentIDs(c)
	year, month, ok := monthYear(c)
	if !ok {
		return
	}

	dash, err := s.analytics.ComputeDashboard(c.Request.Context(), teamID, year, month)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, dash)
}
