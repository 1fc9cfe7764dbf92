package services

import (
	"fmt"

	"project-tracker/internal/config"
	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationRequest struct {
	Username string `json:"username" binding:"required,min=1,max=80"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error)
}

type RegisterServiceImpl struct {
	cfg config.AuthConfig
}

func NewRegisterService(cfg config.AuthConfig) *RegisterServiceImpl {
	return &RegisterServiceImpl{cfg: cfg}
}

// RegisterUser creates a new user. The role defaults to Developer when the
// request leaves it empty; an unrecognized role string is rejected.
func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error) {
	roleString := req.Role
	if roleString == "" {
		roleString = string(models.RoleDeveloper)
	}
	role, err := models.ParseRole(roleString)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, roleString)
	}

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUser
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
