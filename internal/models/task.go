package models

import (
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// TaskStatus is the closed set of task states. Any status may transition to
// any other; there is no forward-only ordering.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

var ErrInvalidStatus = errors.New("invalid status value")

// ParseStatus normalizes a wire-level status string onto the enumerated set.
// Matching is case-insensitive and treats spaces and underscores as the same
// separator, so "in progress", "In Progress" and "IN_PROGRESS" all resolve to
// StatusInProgress.
func ParseStatus(s string) (TaskStatus, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch key {
	case "TO_DO":
		return StatusToDo, nil
	case "IN_PROGRESS":
		return StatusInProgress, nil
	case "DONE":
		return StatusDone, nil
	}
	return "", ErrInvalidStatus
}

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" gorm:"type:text;not null;default:'To Do'"`
	Deadline    *time.Time `json:"deadline"`
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	AssigneeID  *uuid.UUID `json:"assignee_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
