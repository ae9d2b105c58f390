package boardstate

// ReduceTasks applies one action to the task list and returns the new
// list. The input slice is never mutated.
func ReduceTasks(tasks []Task, action Action) []Task {
	switch a := action.(type) {
	case AddTask:
		for _, t := range tasks {
			if t.ID == a.Task.ID {
				return tasks
			}
		}
		next := make([]Task, len(tasks), len(tasks)+1)
		copy(next, tasks)
		return append(next, a.Task)

	case UpdateTaskStatus:
		next := make([]Task, len(tasks))
		copy(next, tasks)
		for i := range next {
			if next[i].ID == a.TaskID {
				next[i].Status = a.NewStatus
			}
		}
		return next

	case DeleteTask:
		next := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.ID != a.TaskID {
				next = append(next, t)
			}
		}
		return next

	default:
		return tasks
	}
}

// ReduceProject applies one action to the project snapshot. Only
// SetProject touches it; task actions pass through untouched so both
// reducers can share a single dispatch.
func ReduceProject(project Project, action Action) Project {
	if a, ok := action.(SetProject); ok {
		return a.Project
	}
	return project
}
