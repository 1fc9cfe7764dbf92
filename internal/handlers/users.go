package handlers

import (
	"net/http"

	"project-tracker/internal/policy"
	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	userService services.UserService
}

func NewUserHandler(db *gorm.DB, userService services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

// ListUsers returns the directory for assigning tasks. Developers only see
// themselves, without the role field.
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := currentUser(c, h.db, h.userService)
	if !ok {
		return
	}

	users, err := h.userService.ListVisibleTo(h.db, *actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]gin.H, 0, len(users))
	if policy.CanListAllUsers(*actor) {
		for _, u := range users {
			response = append(response, gin.H{
				"id":       u.ID,
				"username": u.Username,
				"role":     u.Role,
			})
		}
	} else {
		for _, u := range users {
			response = append(response, gin.H{
				"id":       u.ID,
				"username": u.Username,
			})
		}
	}

	c.JSON(http.StatusOK, response)
}
