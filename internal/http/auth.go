package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"family-budget-go/internal/models"
)

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	Team  *models.Team `json:"team,omitempty"`
}

// POST /v1/auth/register
// Registers a user. Supplying team_name creates a fresh team (the user
// becomes admin); supplying invite_code joins an existing one as member.
func (s *Server) authRegister(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
		TeamName   string `json:"team_name"`
		InviteCode string `json:"invite_code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if (input.TeamName == "") == (input.InviteCode == "") {
		c.JSON(400, gin.H{"error": "exactly one of team_name or invite_code is required"})
		return
	}

	ctx := c.Request.Context()
	if _, err := s.repos.Users().GetByEmail(ctx, input.Email); err == nil {
		c.JSON(409, gin.H{"error": "email_already_registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "encryption_failed"})
		return
	}

	var team *models.Team
	role := models.RoleMember
	if input.TeamName != "" {
		team = &models.Team{
			Name:       strings.TrimSpace(input.TeamName),
			InviteCode: uuid.NewString(),
			Banks:      models.JSONArray(s.cfg.DefaultBanks),
		}
		if err := s.repos.Teams().Create(ctx, team); err != nil {
			c.JSON(500, gin.H{"error": "failed_create_team"})
			return
		}
		role = models.RoleAdmin
	} else {
		team, err = s.repos.Teams().GetByInviteCode(ctx, input.InviteCode)
		if err != nil {
			c.JSON(404, gin.H{"error": "invite_code_not_found"})
			return
		}
	}

	user := &models.User{
		TeamID:       team.ID,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := s.repos.Users().Create(ctx, user); err != nil {
		c.JSON(500, gin.H{"error": "failed_create_user"})
		return
	}

	c.JSON(201, AuthResponse{
		Token: s.tokens.issue(user.ID),
		User:  user,
		Team:  team,
	})
}

// POST /v1/auth/login
func (s *Server) authLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	user, err := s.repos.Users().GetByEmail(c.Request.Context(), strings.ToLower(input.Email))
	if err != nil || !user.Active {
		c.JSON(401, gin.H{"error": "invalid_credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(401, gin.H{"error": "invalid_credentials"})
		return
	}

	c.JSON(200, AuthResponse{
		Token: s.tokens.issue(user.ID),
		User:  user,
	})
}
