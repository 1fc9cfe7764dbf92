package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"project-tracker/internal/models"
	"project-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockUserService resolves users from an in-memory map keyed by ID.
type MockUserService struct {
	users   map[uuid.UUID]models.User
	listErr error
}

func NewMockUserService(users ...models.User) *MockUserService {
	m := &MockUserService{users: make(map[uuid.UUID]models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *MockUserService) GetByID(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &u, nil
}

func (m *MockUserService) ListVisibleTo(db *gorm.DB, actor models.User) ([]models.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if !actor.Role.IsPrivileged() {
		return []models.User{actor}, nil
	}
	all := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	return all, nil
}

type MockProjectService struct {
	err      error
	projects []models.Project
	tasks    []models.Task
}

func (m *MockProjectService) CreateProject(db *gorm.DB, actor models.User, name, description string) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	project := models.Project{ID: uuid.Must(uuid.NewV4()), Name: name, Description: description}
	m.projects = append(m.projects, project)
	return &project, nil
}

func (m *MockProjectService) ListProjects(db *gorm.DB, actor models.User) ([]models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *MockProjectService) GetProjectWithTasks(db *gorm.DB, actor models.User, projectID uuid.UUID) (*models.Project, []models.Task, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	for _, p := range m.projects {
		if p.ID == projectID {
			return &p, m.tasks, nil
		}
	}
	return nil, nil, services.ErrNotFound
}

func (m *MockProjectService) DeleteProject(db *gorm.DB, actor models.User, projectID uuid.UUID) error {
	return m.err
}

type MockTaskService struct {
	err        error
	created    *services.CreateTaskInput
	patch      *services.TaskPatch
	taskResult models.Task
}

func (m *MockTaskService) CreateTask(db *gorm.DB, actor models.User, projectID uuid.UUID, input services.CreateTaskInput) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = &input
	task := m.taskResult
	if task.ID == uuid.Nil {
		task = models.Task{
			ID:         uuid.Must(uuid.NewV4()),
			Title:      input.Title,
			Status:     models.StatusToDo,
			ProjectID:  projectID,
			AssigneeID: input.AssigneeID,
		}
	}
	return &task, nil
}

func (m *MockTaskService) UpdateTask(db *gorm.DB, actorID uuid.UUID, taskID uuid.UUID, patch services.TaskPatch) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.patch = &patch
	task := m.taskResult
	if task.ID == uuid.Nil {
		task = models.Task{ID: taskID, Title: "Write spec", Status: models.StatusDone}
	}
	return &task, nil
}

type MockStoryService struct {
	err     error
	content json.RawMessage
	gotDesc string
}

func (m *MockStoryService) GenerateUserStories(ctx context.Context, actor models.User, projectDescription string) (json.RawMessage, error) {
	m.gotDesc = projectDescription
	if m.err != nil {
		return nil, m.err
	}
	return m.content, nil
}

// newRouter builds a bare engine with middleware that injects the given
// subject, standing in for a verified token.
func newRouter(actorID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", actorID)
		c.Next()
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
