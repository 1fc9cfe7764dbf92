package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"project-tracker/internal/config"
	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a private in-memory database for one test. The shared-cache
// DSN keeps every pooled connection on the same database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		BCryptCost:      bcrypt.MinCost,
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProject(t *testing.T, db *gorm.DB, name string) models.Project {
	t.Helper()

	project := models.Project{
		ID:   uuid.Must(uuid.NewV4()),
		Name: name,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func createTask(t *testing.T, db *gorm.DB, projectID uuid.UUID, title string, assigneeID *uuid.UUID) models.Task {
	t.Helper()

	task := models.Task{
		ID:         uuid.Must(uuid.NewV4()),
		Title:      title,
		Status:     models.StatusToDo,
		ProjectID:  projectID,
		AssigneeID: assigneeID,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}
