package services

import (
	"project-tracker/internal/models"
	"project-tracker/internal/policy"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetByID(db *gorm.DB, id uuid.UUID) (*models.User, error)
	ListVisibleTo(db *gorm.DB, actor models.User) ([]models.User, error)
}

type UserServiceImpl struct{}

func NewUserService() *UserServiceImpl {
	return &UserServiceImpl{}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListVisibleTo returns the user directory the actor may see. Developers get
// a list containing only themselves.
func (s *UserServiceImpl) ListVisibleTo(db *gorm.DB, actor models.User) ([]models.User, error) {
	if !policy.CanListAllUsers(actor) {
		return []models.User{actor}, nil
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
