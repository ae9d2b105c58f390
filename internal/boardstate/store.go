package boardstate

// Store composes the task and project reducers under one dispatch.
type Store struct {
	Tasks   []Task
	Project Project
}

func NewStore(project Project, tasks []Task) *Store {
	return &Store{
		Tasks:   append([]Task(nil), tasks...),
		Project: project,
	}
}

func (s *Store) Dispatch(action Action) {
	s.Tasks = ReduceTasks(s.Tasks, action)
	s.Project = ReduceProject(s.Project, action)
}

// Apply dispatches the command's forward action; Revert dispatches the
// inverse. A caller pairs Apply with a server call and reverts when the
// call fails, which is the only concurrency control the board has.
func (s *Store) Apply(cmd Command) {
	s.Dispatch(cmd.Forward)
}

func (s *Store) Revert(cmd Command) {
	s.Dispatch(cmd.Inverse)
}

// FindTask returns the current snapshot of a task, if present.
func (s *Store) FindTask(taskID uint) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return Task{}, false
}
