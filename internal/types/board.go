package types

// Role is the access level a user holds within a specific project.
// Admin is reserved for the project owner; collaborators carry editor
// or viewer.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
	RoleNone   Role = "none"
)

func ValidCollaboratorRole(role Role) bool {
	return role == RoleEditor || role == RoleViewer
}

// TaskStatus values form a linear progression across the kanban board.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusPending    TaskStatus = "Pending"
	StatusCompleted  TaskStatus = "Completed"
)

// StatusOrder is the canonical column order of the board.
var StatusOrder = []TaskStatus{StatusTodo, StatusInProgress, StatusPending, StatusCompleted}

func ValidTaskStatus(status TaskStatus) bool {
	for _, s := range StatusOrder {
		if s == status {
			return true
		}
	}
	return false
}

// StatusIndex returns the position of status in StatusOrder, or -1 if
// the value is not a known status.
func StatusIndex(status TaskStatus) int {
	for i, s := range StatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
