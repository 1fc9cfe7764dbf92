// Package policy encodes the visibility and mutation rules as pure predicates
// over the acting user and the resource. It never touches storage; services
// translate its filtering rules into queries where needed.
package policy

import (
	"project-tracker/internal/models"
)

// CanCreateProject reports whether the actor may create projects.
func CanCreateProject(actor models.User) bool {
	return actor.Role.IsPrivileged()
}

// CanCreateTask reports whether the actor may create tasks under a project.
func CanCreateTask(actor models.User) bool {
	return actor.Role.IsPrivileged()
}

// CanUpdateTask reports whether the actor may mutate the given task.
// Admins and managers may update any task; a developer only the task they are
// currently assigned to. An allowed developer may touch every mutable field,
// not just the status.
func CanUpdateTask(actor models.User, task models.Task) bool {
	if actor.Role.IsPrivileged() {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == actor.ID
}

// CanDeleteProject reports whether the actor may remove a project and,
// through the cascade, all of its tasks.
func CanDeleteProject(actor models.User) bool {
	return actor.Role.IsPrivileged()
}

// CanListAllUsers reports whether the actor sees the full user directory.
// Developers only ever see their own identity.
func CanListAllUsers(actor models.User) bool {
	return actor.Role.IsPrivileged()
}

// CanGenerateStories reports whether the actor may call the story generator.
func CanGenerateStories(actor models.User) bool {
	return actor.Role.IsPrivileged()
}

// SeesAllProjects reports whether the actor's project listing is unfiltered.
// A developer's listing is restricted to projects holding at least one task
// assigned to them.
func SeesAllProjects(actor models.User) bool {
	return actor.Role.IsPrivileged()
}

// TaskVisible reports whether a single task appears in the actor's view of a
// project's task list.
func TaskVisible(actor models.User, task models.Task) bool {
	if actor.Role.IsPrivileged() {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == actor.ID
}

// ProjectVisible reports whether the project appears in the actor's listing.
// The tasks slice must be the project's full task set.
func ProjectVisible(actor models.User, tasks []models.Task) bool {
	if actor.Role.IsPrivileged() {
		return true
	}
	for _, t := range tasks {
		if t.AssigneeID != nil && *t.AssigneeID == actor.ID {
			return true
		}
	}
	return false
}

// FilterTasks returns the subset of tasks the actor may see, preserving order.
func FilterTasks(actor models.User, tasks []models.Task) []models.Task {
	if actor.Role.IsPrivileged() {
		return tasks
	}
	visible := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if TaskVisible(actor, t) {
			visible = append(visible, t)
		}
	}
	return visible
}
