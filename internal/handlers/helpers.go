package handlers

import (
	"errors"
	"net/http"

	"project-tracker/internal/models"
	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// currentUser resolves the authenticated subject to a live user row. A token
// whose subject no longer exists yields a user-not-found response, which is
// deliberately distinct from a permission denial.
func currentUser(c *gin.Context, db *gorm.DB, userService services.UserService) (*models.User, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return nil, false
	}

	userID, ok := userIDInterface.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID format"})
		return nil, false
	}

	user, err := userService.GetByID(db, userID)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}

	return user, true
}

// handleServiceError maps service-layer sentinel errors onto stable HTTP
// responses.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": "Permission denied"})
	case errors.Is(err, services.ErrDuplicateUser):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, models.ErrInvalidRole),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, services.ErrExternalService), errors.Is(err, services.ErrBreakerOpen):
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating stories", "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
