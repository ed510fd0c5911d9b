package http

import (
	"github.com/gin-gonic/gin"
)

// GET /v1/notifications?unread=true
func (s *Server) listNotifications(c *gin.Context) {
	teamID, _ := currentIDs(c)
	unreadOnly := c.Query("unread") == "true"

	notes, err := s.repos.Notifications().ListByTeam(c.Request.Context(), teamID, unreadOnly)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, notes)
}

// POST /v1/notifications/:id/read
func (s *Server) markNotificationRead(c *gin.Context) {
	teamID, _ := currentIDs(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.repos.Notifications().MarkRead(c.Request.Context(), teamID, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "notification read"})
}
