package http

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// tokenStore holds opaque bearer tokens issued at login. Tokens live for
// the process lifetime; restarting the server logs everyone out.
type tokenStore struct {
	mu      sync.RWMutex
	byToken map[string]uint
}

func newTokenStore() *tokenStore {
	return &tokenStore{byToken: make(map[string]uint)}
}

func (ts *tokenStore) issue(userID uint) string {
	token := "fbt_" + uuid.NewString()
	ts.mu.Lock()
	ts.byToken[token] = userID
	ts.mu.Unlock()
	return token
}

func (ts *tokenStore) lookup(token string) (uint, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	id, ok := ts.byToken[token]
	return id, ok
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "authorization_header_missing"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(401, gin.H{"error": "authorization_header_invalid"})
			return
		}

		userID, ok := s.tokens.lookup(parts[1])
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid_token"})
			return
		}

		user, err := s.repos.Users().GetByID(c.Request.Context(), userID)
		if err != nil || !user.Active {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid_token"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("teamID", user.TeamID)
		c.Next()
	}
}

func currentIDs(c *gin.Context) (teamID, userID uint) {
	return c.MustGet("teamID").(uint), c.MustGet("userID").(uint)
}
