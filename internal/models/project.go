package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
}
