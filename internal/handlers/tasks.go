package handlers

import (
	"net/http"
	"time"

	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
	userService services.UserService

	// projects holds the cached project listings, which go stale whenever
	// task assignments change developer visibility.
	projects *services.CachedProjectService
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateTaskRequest is a partial update; absent fields leave the task alone.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService, userService services.UserService, projects *services.CachedProjectService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService, userService: userService, projects: projects}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentUser(c, h.db, h.userService)
	if !ok {
		return
	}

	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(h.db, *actor, projectID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Deadline:    req.Deadline,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.invalidateProjectListings()

	c.JSON(http.StatusCreated, gin.H{
		"id":          task.ID,
		"title":       task.Title,
		"status":      task.Status,
		"assignee_id": task.AssigneeID,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}
	actorID, ok := userIDInterface.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID format"})
		return
	}

	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, actorID, taskID, services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.invalidateProjectListings()

	c.JSON(http.StatusOK, gin.H{
		"id":     task.ID,
		"title":  task.Title,
		"status": task.Status,
	})
}

func (h *TaskHandler) invalidateProjectListings() {
	if h.projects != nil {
		h.projects.InvalidateListings()
	}
}
