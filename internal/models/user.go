package models

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

// Role is the closed set of roles a user can hold. The role is assigned at
// registration and never changes afterwards.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleManager   Role = "Manager"
	RoleDeveloper Role = "Developer"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole maps a wire-level role string onto the enumerated set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleDeveloper:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// IsPrivileged reports whether the role carries full project/task rights.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:text;not null;default:'Developer'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:AssigneeID"`
}
