package services_test

import (
	"testing"
	"time"

	"project-tracker/internal/cache"
	"project-tracker/internal/models"
	"project-tracker/internal/services"
	"project-tracker/internal/worker"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateTask(t *testing.T) {
	db := setupDB(t)
	svc := services.NewTaskService(nil)
	manager := createUser(t, db, "alice", models.RoleManager)
	dev := createUser(t, db, "bob", models.RoleDeveloper)
	launch := createProject(t, db, "Launch")

	task, err := svc.CreateTask(db, manager, launch.ID, services.CreateTaskInput{
		Title:      "Write spec",
		AssigneeID: &dev.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusToDo, task.Status, "status defaults to To Do")
	assert.Equal(t, launch.ID, task.ProjectID)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, dev.ID, *task.AssigneeID)

	t.Run("developer denied", func(t *testing.T) {
		_, err := svc.CreateTask(db, dev, launch.ID, services.CreateTaskInput{Title: "Sneaky"})
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("missing project", func(t *testing.T) {
		_, err := svc.CreateTask(db, manager, uuid.Must(uuid.NewV4()), services.CreateTaskInput{Title: "Nowhere"})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := svc.CreateTask(db, manager, launch.ID, services.CreateTaskInput{Title: "  "})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("unknown assignee rejected", func(t *testing.T) {
		ghost := uuid.Must(uuid.NewV4())
		_, err := svc.CreateTask(db, manager, launch.ID, services.CreateTaskInput{
			Title:      "Haunted",
			AssigneeID: &ghost,
		})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestUpdateTaskPermissions(t *testing.T) {
	db := setupDB(t)
	svc := services.NewTaskService(nil)
	manager := createUser(t, db, "alice", models.RoleManager)
	bob := createUser(t, db, "bob", models.RoleDeveloper)
	carol := createUser(t, db, "carol", models.RoleDeveloper)
	launch := createProject(t, db, "Launch")
	task := createTask(t, db, launch.ID, "Write spec", &bob.ID)

	t.Run("assignee may update", func(t *testing.T) {
		updated, err := svc.UpdateTask(db, bob.ID, task.ID, services.TaskPatch{Status: strPtr("Done")})
		require.NoError(t, err)
		assert.Equal(t, models.StatusDone, updated.Status)
	})

	t.Run("other developer denied", func(t *testing.T) {
		_, err := svc.UpdateTask(db, carol.ID, task.ID, services.TaskPatch{Status: strPtr("To Do")})
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("manager may update any task", func(t *testing.T) {
		updated, err := svc.UpdateTask(db, manager.ID, task.ID, services.TaskPatch{Status: strPtr("In Progress")})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
	})

	t.Run("task existence is checked before the actor", func(t *testing.T) {
		_, err := svc.UpdateTask(db, uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), services.TaskPatch{})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("stale actor yields user not found", func(t *testing.T) {
		_, err := svc.UpdateTask(db, uuid.Must(uuid.NewV4()), task.ID, services.TaskPatch{})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUpdateTaskPartialSemantics(t *testing.T) {
	db := setupDB(t)
	svc := services.NewTaskService(nil)
	bob := createUser(t, db, "bob", models.RoleDeveloper)
	launch := createProject(t, db, "Launch")
	task := createTask(t, db, launch.ID, "Write spec", &bob.ID)

	t.Run("empty patch changes nothing", func(t *testing.T) {
		updated, err := svc.UpdateTask(db, bob.ID, task.ID, services.TaskPatch{})
		require.NoError(t, err)
		assert.Equal(t, task.Title, updated.Title)
		assert.Equal(t, task.Status, updated.Status)
		assert.Equal(t, task.AssigneeID, updated.AssigneeID)
	})

	t.Run("only present fields are applied", func(t *testing.T) {
		updated, err := svc.UpdateTask(db, bob.ID, task.ID, services.TaskPatch{
			Description: strPtr("now with details"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Write spec", updated.Title)
		assert.Equal(t, "now with details", updated.Description)
	})

	t.Run("status parse happens before any mutation", func(t *testing.T) {
		_, err := svc.UpdateTask(db, bob.ID, task.ID, services.TaskPatch{
			Title:  strPtr("should not stick"),
			Status: strPtr("Doing"),
		})
		assert.ErrorIs(t, err, models.ErrInvalidStatus)

		var reloaded models.Task
		require.NoError(t, db.First(&reloaded, "id = ?", task.ID).Error)
		assert.Equal(t, "Write spec", reloaded.Title)
		assert.Equal(t, models.StatusToDo, reloaded.Status)
	})

	t.Run("status accepted in any casing", func(t *testing.T) {
		updated, err := svc.UpdateTask(db, bob.ID, task.ID, services.TaskPatch{Status: strPtr("IN_PROGRESS")})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, updated.Status)
	})

	t.Run("unknown assignee rejected without mutation", func(t *testing.T) {
		ghost := uuid.Must(uuid.NewV4())
		_, err := svc.UpdateTask(db, bob.ID, task.ID, services.TaskPatch{AssigneeID: &ghost})
		assert.ErrorIs(t, err, services.ErrValidation)

		var reloaded models.Task
		require.NoError(t, db.First(&reloaded, "id = ?", task.ID).Error)
		require.NotNil(t, reloaded.AssigneeID)
		assert.Equal(t, bob.ID, *reloaded.AssigneeID)
	})
}

func TestCreateTaskSchedulesReminder(t *testing.T) {
	db := setupDB(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cacheConfig := cache.DefaultCacheConfig()
	cacheConfig.Addr = mr.Addr()
	redisCache := cache.NewRedisCache(cacheConfig)
	t.Cleanup(func() { redisCache.Close() })

	queue := worker.NewJobQueue(redisCache.Client())
	svc := services.NewTaskService(queue)

	manager := createUser(t, db, "alice", models.RoleManager)
	launch := createProject(t, db, "Launch")

	deadline := time.Now().Add(time.Hour)
	_, err = svc.CreateTask(db, manager, launch.ID, services.CreateTaskInput{
		Title:    "Write spec",
		Deadline: &deadline,
	})
	require.NoError(t, err)

	size, err := queue.Size("reminders")
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	// No deadline, no reminder.
	_, err = svc.CreateTask(db, manager, launch.ID, services.CreateTaskInput{Title: "Untimed chore"})
	require.NoError(t, err)

	size, err = queue.Size("reminders")
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)
}
