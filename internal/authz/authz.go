// Package authz derives a user's role for a project and gates every
// mutation on it. Handlers re-resolve the role server-side on each
// request; the client's claimed role is never trusted.
package authz

import (
	"github.com/nestnic/taskflow/internal/models"
	"github.com/nestnic/taskflow/internal/types"
)

// ResolveRole maps (project, user) to exactly one of admin, editor,
// viewer or none. The project's Collaborators must be preloaded.
func ResolveRole(project *models.Project, userID uint) types.Role {
	if project == nil {
		return types.RoleNone
	}

	if project.OwnerID == userID {
		return types.RoleAdmin
	}

	for _, c := range project.Collaborators {
		if c.UserID == userID {
			switch types.Role(c.Role) {
			case types.RoleEditor:
				return types.RoleEditor
			case types.RoleViewer:
				return types.RoleViewer
			}
			return types.RoleViewer
		}
	}

	return types.RoleNone
}

// IsParticipant reports whether the role grants access to the board and
// chat at all.
func IsParticipant(role types.Role) bool {
	return role == types.RoleAdmin || role == types.RoleEditor || role == types.RoleViewer
}

// CanManageTasks gates task create/move/delete, including deleting
// completed tasks.
func CanManageTasks(role types.Role) bool {
	return role == types.RoleAdmin || role == types.RoleEditor
}

// CanManageProject gates invite, approve/deny, archive, delete project
// and clear chat. Owner only.
func CanManageProject(role types.Role) bool {
	return role == types.RoleAdmin
}

// CanLeave reports whether the user may leave the project. The owner
// cannot leave; they must delete the project instead.
func CanLeave(role types.Role) bool {
	return role == types.RoleEditor || role == types.RoleViewer
}

// HasPendingRequest reports whether userID is waiting for approval on
// the project. JoinRequests must be preloaded.
func HasPendingRequest(project *models.Project, userID uint) bool {
	for _, r := range project.JoinRequests {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
