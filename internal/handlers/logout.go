package handlers

import (
	"net/http"

	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LogoutHandler struct {
	db          *gorm.DB
	authService services.AuthService
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func NewLogoutHandler(db *gorm.DB, authService services.AuthService) *LogoutHandler {
	return &LogoutHandler{db: db, authService: authService}
}

// Logout revokes the refresh token. The response is the same whether or not
// the token was known, so the endpoint leaks nothing about token validity.
func (h *LogoutHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	_ = h.authService.RevokeToken(h.db, req.RefreshToken)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
