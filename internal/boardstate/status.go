package boardstate

import "github.com/nestnic/taskflow/internal/types"

// NextStatus steps one column forward along the board order. The
// second return is false when the task is already Completed (or the
// status is unknown), in which case the input is returned unchanged.
func NextStatus(status types.TaskStatus) (types.TaskStatus, bool) {
	i := types.StatusIndex(status)
	if i < 0 || i >= len(types.StatusOrder)-1 {
		return status, false
	}
	return types.StatusOrder[i+1], true
}

// PrevStatus steps one column backward; a task in To Do stays put.
func PrevStatus(status types.TaskStatus) (types.TaskStatus, bool) {
	i := types.StatusIndex(status)
	if i <= 0 {
		return status, false
	}
	return types.StatusOrder[i-1], true
}
