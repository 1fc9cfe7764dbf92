package handlers

import (
	"net/http"

	"project-tracker/internal/models"
	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	db             *gorm.DB
	projectService services.ProjectService
	userService    services.UserService
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewProjectHandler(db *gorm.DB, projectService services.ProjectService, userService services.UserService) *ProjectHandler {
	return &ProjectHandler{db: db, projectService: projectService, userService: userService}
}

func projectResponse(p models.Project) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
	}
}

func taskResponse(t models.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"deadline":    t.Deadline,
		"assignee_id": t.AssigneeID,
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := currentUser(c, h.db, h.userService)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(h.db, *actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]gin.H, 0, len(projects))
	for _, p := range projects {
		response = append(response, projectResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := currentUser(c, h.db, h.userService)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(h.db, *actor, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, projectResponse(*project))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, ok := currentUser(c, h.db, h.userService)
	if !ok {
		return
	}

	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	project, tasks, err := h.projectService.GetProjectWithTasks(h.db, *actor, projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	taskList := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		taskList = append(taskList, taskResponse(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          project.ID,
		"name":        project.Name,
		"description": project.Description,
		"tasks":       taskList,
	})
}
