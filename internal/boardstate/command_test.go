package boardstate

import (
	"testing"

	"github.com/nestnic/taskflow/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyThenRevertRestoresTaskList(t *testing.T) {
	store := NewStore(Project{ID: 10, OwnerID: 1}, sampleTasks())
	original := append([]Task(nil), store.Tasks...)

	task, ok := store.FindTask(1)
	require.True(t, ok)

	cmd := UpdateStatusCommand(task, types.StatusInProgress)

	store.Apply(cmd)
	updated, _ := store.FindTask(1)
	assert.Equal(t, types.StatusInProgress, updated.Status)

	store.Revert(cmd)
	assert.Equal(t, original, store.Tasks)
}

func TestAddTaskCommandRollback(t *testing.T) {
	store := NewStore(Project{ID: 10, OwnerID: 1}, sampleTasks())

	cmd := AddTaskCommand(Task{ID: 3, Title: "Speculative", Status: types.StatusTodo})

	store.Apply(cmd)
	assert.Len(t, store.Tasks, 3)

	store.Revert(cmd)
	assert.Len(t, store.Tasks, 2)
	_, ok := store.FindTask(3)
	assert.False(t, ok)
}

func TestDeleteTaskCommandRollback(t *testing.T) {
	store := NewStore(Project{ID: 10, OwnerID: 1}, sampleTasks())

	task, ok := store.FindTask(2)
	require.True(t, ok)

	cmd := DeleteTaskCommand(task)

	store.Apply(cmd)
	_, found := store.FindTask(2)
	assert.False(t, found)

	store.Revert(cmd)
	restored, found := store.FindTask(2)
	require.True(t, found)
	assert.Equal(t, task, restored)
}

func TestSetProjectCommandRollback(t *testing.T) {
	before := Project{ID: 10, OwnerID: 1, JoinRequests: []uint{7}}
	after := Project{ID: 10, OwnerID: 1, Collaborators: []Member{{UserID: 7, Role: types.RoleViewer}}}
	store := NewStore(before, nil)

	cmd := SetProjectCommand(before, after)

	store.Apply(cmd)
	assert.Equal(t, after, store.Project)

	store.Revert(cmd)
	assert.Equal(t, before, store.Project)
}
