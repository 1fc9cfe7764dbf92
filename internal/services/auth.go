package services

import (
	"fmt"
	"time"

	"project-tracker/internal/config"
	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	LoginUser(db *gorm.DB, username, password string) (*models.User, error)
	GenerateToken(db *gorm.DB, user *models.User) (string, string, error)
	RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error)
	RevokeToken(db *gorm.DB, refreshToken string) error
}

type AuthServiceImpl struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg}
}

// dummyHash is a valid bcrypt hash of a random throwaway value. Login runs a
// comparison against it when the username does not exist, so the response
// time does not reveal whether the account is real.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// LoginUser verifies the credentials and returns the user. Unknown usernames
// and wrong passwords both come back as ErrUnauthenticated.
func (s *AuthServiceImpl) LoginUser(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrUnauthenticated
	}
	if !VerifyPassword(user.Password, password) {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

// GenerateToken issues a signed access token plus a stored refresh token.
func (s *AuthServiceImpl) GenerateToken(db *gorm.DB, user *models.User) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshTokenUUID, err := uuid.NewV4()
	if err != nil {
		return "", "", err
	}

	token := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       user.ID,
		RefreshToken: refreshTokenUUID,
		ExpiresAt:    time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := db.Create(&token).Error; err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenUUID.String(), nil
}

// RefreshToken rotates a refresh token and issues a new access token.
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error) {
	var token models.Token
	err := db.Where("refresh_token = ? AND expires_at > ?", refreshToken, time.Now()).First(&token).Error
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: refresh token not recognized", ErrUnauthenticated)
	}

	var user models.User
	if err := db.First(&user, "id = ?", token.UserID).Error; err != nil {
		return "", "", 0, ErrUserNotFound
	}

	accessToken, newRefreshToken, err := s.GenerateToken(db, &user)
	if err != nil {
		return "", "", 0, err
	}

	db.Delete(&token)

	return accessToken, newRefreshToken, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// RevokeToken deletes a refresh token. Unknown tokens are not an error.
func (s *AuthServiceImpl) RevokeToken(db *gorm.DB, refreshToken string) error {
	return db.Where("refresh_token = ?", refreshToken).Delete(&models.Token{}).Error
}

// PurgeExpiredTokens removes refresh tokens past their expiry. Run by the
// background cleanup job.
func PurgeExpiredTokens(db *gorm.DB) error {
	return db.Where("expires_at <= ?", time.Now()).Delete(&models.Token{}).Error
}
