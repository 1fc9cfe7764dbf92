package services

import (
	"fmt"
	"strings"

	"project-tracker/internal/models"
	"project-tracker/internal/policy"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ProjectService interface {
	CreateProject(db *gorm.DB, actor models.User, name, description string) (*models.Project, error)
	ListProjects(db *gorm.DB, actor models.User) ([]models.Project, error)
	GetProjectWithTasks(db *gorm.DB, actor models.User, projectID uuid.UUID) (*models.Project, []models.Task, error)
	DeleteProject(db *gorm.DB, actor models.User, projectID uuid.UUID) error
}

type ProjectServiceImpl struct{}

func NewProjectService() *ProjectServiceImpl {
	return &ProjectServiceImpl{}
}

func (s *ProjectServiceImpl) CreateProject(db *gorm.DB, actor models.User, name, description string) (*models.Project, error) {
	if !policy.CanCreateProject(actor) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}

	project := models.Project{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        name,
		Description: description,
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns the projects visible to the actor. Admins and managers
// see everything; a developer only sees projects holding at least one task
// assigned to them.
func (s *ProjectServiceImpl) ListProjects(db *gorm.DB, actor models.User) ([]models.Project, error) {
	var projects []models.Project
	if policy.SeesAllProjects(actor) {
		if err := db.Find(&projects).Error; err != nil {
			return nil, err
		}
		return projects, nil
	}

	err := db.
		Joins("JOIN tasks ON tasks.project_id = projects.id").
		Where("tasks.assignee_id = ?", actor.ID).
		Distinct().
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectWithTasks loads a project and its task list filtered to the
// actor's view. Project existence is checked before any task filtering.
func (s *ProjectServiceImpl) GetProjectWithTasks(db *gorm.DB, actor models.User, projectID uuid.UUID) (*models.Project, []models.Task, error) {
	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("%w: project", ErrNotFound)
		}
		return nil, nil, err
	}

	var tasks []models.Task
	query := db.Where("project_id = ?", project.ID)
	if !policy.SeesAllProjects(actor) {
		query = query.Where("assignee_id = ?", actor.ID)
	}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, nil, err
	}

	return &project, tasks, nil
}

// DeleteProject removes a project together with all of its tasks. The cascade
// is an explicit two-step delete inside one transaction so no task can be
// left referencing a missing project.
func (s *ProjectServiceImpl) DeleteProject(db *gorm.DB, actor models.User, projectID uuid.UUID) error {
	if !policy.CanDeleteProject(actor) {
		return ErrPermissionDenied
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: project", ErrNotFound)
			}
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
