package handlers

import (
	"net/http"

	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StoryHandler struct {
	db           *gorm.DB
	storyService services.StoryService
	userService  services.UserService
}

type GenerateStoriesRequest struct {
	ProjectDescription string `json:"projectDescription"`
}

func NewStoryHandler(db *gorm.DB, storyService services.StoryService, userService services.UserService) *StoryHandler {
	return &StoryHandler{db: db, storyService: storyService, userService: userService}
}

// GenerateUserStories forwards the project description to the external
// text-generation service and returns its JSON content verbatim.
func (h *StoryHandler) GenerateUserStories(c *gin.Context) {
	actor, ok := currentUser(c, h.db, h.userService)
	if !ok {
		return
	}

	var req GenerateStoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	content, err := h.storyService.GenerateUserStories(c.Request.Context(), *actor, req.ProjectDescription)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", content)
}
