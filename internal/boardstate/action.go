// Package boardstate keeps an in-memory mirror of a project's task
// list and project snapshot for a kanban client. Mutations are applied
// optimistically through pure reducers before the server confirms, and
// rolled back with inverse actions when the call fails.
package boardstate

import (
	"time"

	"github.com/nestnic/taskflow/internal/types"
)

// Task is the client-side snapshot of a task as served by the API.
type Task struct {
	ID         uint
	ProjectID  uint
	Title      string
	Status     types.TaskStatus
	AssigneeID *uint
	DueDate    *time.Time
}

type Member struct {
	UserID uint
	Role   types.Role
}

// Project mirrors the project document the board renders: membership
// and join-request state refresh whenever a mutation touches them.
type Project struct {
	ID            uint
	PublicID      string
	Name          string
	Description   string
	OwnerID       uint
	IsArchived    bool
	Collaborators []Member
	JoinRequests  []uint
}

// Action is the tagged union driving both reducers.
type Action interface {
	isAction()
}

type AddTask struct {
	Task Task
}

type UpdateTaskStatus struct {
	TaskID    uint
	NewStatus types.TaskStatus
}

type DeleteTask struct {
	TaskID uint
}

type SetProject struct {
	Project Project
}

func (AddTask) isAction()          {}
func (UpdateTaskStatus) isAction() {}
func (DeleteTask) isAction()       {}
func (SetProject) isAction()       {}
