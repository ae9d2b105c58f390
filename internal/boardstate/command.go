package boardstate

import "github.com/nestnic/taskflow/internal/types"

// Command pairs an optimistic mutation with the action that undoes it.
type Command struct {
	Forward Action
	Inverse Action
}

func AddTaskCommand(task Task) Command {
	return Command{
		Forward: AddTask{Task: task},
		Inverse: DeleteTask{TaskID: task.ID},
	}
}

// UpdateStatusCommand captures the task's current status so a failed
// server call restores it exactly.
func UpdateStatusCommand(task Task, newStatus types.TaskStatus) Command {
	return Command{
		Forward: UpdateTaskStatus{TaskID: task.ID, NewStatus: newStatus},
		Inverse: UpdateTaskStatus{TaskID: task.ID, NewStatus: task.Status},
	}
}

func DeleteTaskCommand(task Task) Command {
	return Command{
		Forward: DeleteTask{TaskID: task.ID},
		Inverse: AddTask{Task: task},
	}
}

func SetProjectCommand(previous, next Project) Command {
	return Command{
		Forward: SetProject{Project: next},
		Inverse: SetProject{Project: previous},
	}
}
