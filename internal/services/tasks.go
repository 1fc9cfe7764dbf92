package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"project-tracker/internal/models"
	"project-tracker/internal/policy"
	"project-tracker/internal/worker"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  *uuid.UUID
	Deadline    *time.Time
}

// TaskPatch carries a partial update. Nil fields are left untouched; a field
// that arrives as explicit null in the request body is treated the same as an
// absent one.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	AssigneeID  *uuid.UUID
}

type TaskService interface {
	CreateTask(db *gorm.DB, actor models.User, projectID uuid.UUID, input CreateTaskInput) (*models.Task, error)
	UpdateTask(db *gorm.DB, actorID uuid.UUID, taskID uuid.UUID, patch TaskPatch) (*models.Task, error)
}

type TaskServiceImpl struct {
	queue *worker.JobQueue
}

// NewTaskService builds a task service. The queue may be nil; reminder jobs
// are then skipped.
func NewTaskService(queue *worker.JobQueue) *TaskServiceImpl {
	return &TaskServiceImpl{queue: queue}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, actor models.User, projectID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	if !policy.CanCreateTask(actor) {
		return nil, ErrPermissionDenied
	}

	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: project", ErrNotFound)
		}
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrValidation)
	}

	if input.AssigneeID != nil {
		var assignee models.User
		if err := db.First(&assignee, "id = ?", *input.AssigneeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("%w: assignee does not exist", ErrValidation)
			}
			return nil, err
		}
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       input.Title,
		Description: input.Description,
		Status:      models.StatusToDo,
		Deadline:    input.Deadline,
		ProjectID:   project.ID,
		AssigneeID:  input.AssigneeID,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.scheduleReminder(&task)

	return &task, nil
}

// UpdateTask applies a partial update. Checks run in a fixed order: task
// existence, actor resolution, permission, then status validation before any
// field is touched, so an invalid status never partially mutates the task.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, actorID uuid.UUID, taskID uuid.UUID, patch TaskPatch) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: task", ErrNotFound)
		}
		return nil, err
	}

	var actor models.User
	if err := db.First(&actor, "id = ?", actorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !policy.CanUpdateTask(actor, task) {
		return nil, ErrPermissionDenied
	}

	if patch.Status != nil {
		status, err := models.ParseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.AssigneeID != nil {
		var assignee models.User
		if err := db.First(&assignee, "id = ?", *patch.AssigneeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("%w: assignee does not exist", ErrValidation)
			}
			return nil, err
		}
		task.AssigneeID = patch.AssigneeID
	}

	if err := db.Save(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *TaskServiceImpl) scheduleReminder(task *models.Task) {
	if s.queue == nil || task.Deadline == nil {
		return
	}
	err := s.queue.EnqueueAt("reminders", worker.JobTypeTaskReminder, map[string]interface{}{
		"task_id": task.ID.String(),
		"title":   task.Title,
	}, *task.Deadline)
	if err != nil {
		// Reminders are best effort; the task itself is already committed.
		log.Printf("failed to enqueue reminder for task %s: %v", task.ID, err)
	}
}
