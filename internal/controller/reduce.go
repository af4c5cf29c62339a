package controller

import (
	"slices"
	"strings"
	"unicode/utf8"

	"todos-cli/internal/model"
)

// Reduce applies a to s and returns the next state plus the effects to run.
// Actions that do not apply in the current state are ignored.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case Init:
		if s.AutoLoginTried {
			return s, nil
		}
		s.AutoLoginTried = true
		return s, []Effect{LoadSession{}}

	case SessionLoaded:
		name := strings.TrimSpace(a.UserName)
		if s.Phase != LoggedOut || name == "" {
			return s, nil
		}
		s.NameDraft = name
		return startLogin(s, name)

	case EditName:
		s.NameDraft = a.Text
		return s, nil

	case SubmitLogin:
		name := strings.TrimSpace(a.Name)
		if s.Phase != LoggedOut || name == "" {
			return s, nil
		}
		return startLogin(s, name)

	case UserFetched:
		return reduceUserFetched(s, a)

	case UserCreated:
		if s.Phase != LoggingIn || a.UserName != s.PendingName {
			return s, nil
		}
		if !a.OK {
			s.Phase = LoggedOut
			s.PendingName = ""
			s.Loading = false
			s.Err = ErrCreateUser
			return s, nil
		}
		return finishLogin(s, []model.Task{})

	case EditTask:
		s.TaskDraft = a.Text
		return s, nil

	case SubmitTask:
		if !s.idle() {
			return s, nil
		}
		label := s.TaskDraft
		if strings.TrimSpace(label) == "" || utf8.RuneCountInString(label) > MaxLabelLen {
			return s, nil
		}
		return s, []Effect{CreateTask{Owner: s.Username, Data: model.TaskData{Label: label, IsDone: false}}}

	case TaskCreated:
		if s.Phase != LoggedIn || a.Owner != s.Username {
			return s, nil
		}
		if !a.OK || a.Task.ID == 0 {
			s.Err = ErrCreateTask
			return s, nil
		}
		s.Tasks = append(slices.Clone(s.Tasks), a.Task)
		s.TaskDraft = ""
		return s, nil

	case ToggleTask:
		if !s.idle() || a.Index < 0 || a.Index >= len(s.Tasks) {
			return s, nil
		}
		t := s.Tasks[a.Index]
		data := model.TaskData{Label: t.Label, IsDone: !t.IsDone}
		return s, []Effect{UpdateTask{ID: t.ID, Data: data}}

	case TaskUpdated:
		if s.Phase != LoggedIn {
			return s, nil
		}
		if !a.OK {
			s.Err = ErrUpdateTask
			return s, nil
		}
		i := model.IndexOf(s.Tasks, a.ID)
		if i < 0 {
			return s, nil
		}
		next := a.Task
		if next.ID == 0 {
			next = model.Task{ID: a.ID, Label: a.Requested.Label, IsDone: a.Requested.IsDone}
		}
		tasks := slices.Clone(s.Tasks)
		tasks[i] = next
		s.Tasks = tasks
		return s, nil

	case DeleteTask:
		if !s.idle() || a.Index < 0 || a.Index >= len(s.Tasks) {
			return s, nil
		}
		return s, []Effect{RemoveTask{ID: s.Tasks[a.Index].ID}}

	case TaskDeleted:
		if s.Phase != LoggedIn {
			return s, nil
		}
		if !a.OK {
			s.Err = ErrDeleteTask
			return s, nil
		}
		i := model.IndexOf(s.Tasks, a.ID)
		if i < 0 {
			return s, nil
		}
		s.Tasks = slices.Delete(slices.Clone(s.Tasks), i, i+1)
		return s, nil

	case RequestClear:
		if !s.idle() || len(s.Tasks) == 0 {
			return s, nil
		}
		s.Sub = ClearConfirmPending
		return s, nil

	case CancelClear:
		if s.ConfirmingClear() {
			s.Sub = Idle
		}
		return s, nil

	case ConfirmClear:
		if !s.ConfirmingClear() {
			return s, nil
		}
		s.Sub = Idle
		s.Loading = true
		ids := make([]int, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			ids = append(ids, t.ID)
		}
		return s, []Effect{RemoveAllTasks{IDs: ids}}

	case AllTasksDeleted:
		if s.Phase != LoggedIn {
			return s, nil
		}
		s.Loading = false
		if !a.OK {
			// Some deletes may have gone through; the local list keeps its
			// pre-clear contents until the next fetch.
			s.Err = ErrDeleteAllTasks
			return s, nil
		}
		s.Tasks = []model.Task{}
		return s, nil

	case Refresh:
		if !s.idle() {
			return s, nil
		}
		s.Loading = true
		return s, []Effect{FetchUser{UserName: s.Username}}

	case ReplaceTasks:
		if !s.idle() {
			return s, nil
		}
		s.Loading = true
		return s, []Effect{ReplaceTaskList{Owner: s.Username, Tasks: slices.Clone(a.Tasks)}}

	case TasksReplaced:
		if s.Phase != LoggedIn || a.Owner != s.Username {
			return s, nil
		}
		if !a.OK {
			s.Loading = false
			s.Err = ErrReplaceTasks
			return s, nil
		}
		// The server assigns fresh ids; adopt them.
		return s, []Effect{FetchUser{UserName: s.Username}}

	case Logout:
		if s.Phase != LoggedIn {
			return s, nil
		}
		return State{AutoLoginTried: s.AutoLoginTried}, []Effect{ClearSession{}}
	}
	return s, nil
}

func (s State) idle() bool {
	return s.Phase == LoggedIn && s.Sub == Idle && !s.Loading
}

func startLogin(s State, name string) (State, []Effect) {
	s.Phase = LoggingIn
	s.PendingName = name
	s.Loading = true
	return s, []Effect{FetchUser{UserName: name}}
}

func finishLogin(s State, tasks []model.Task) (State, []Effect) {
	s.Phase = LoggedIn
	s.Sub = Idle
	s.Username = s.PendingName
	s.PendingName = ""
	s.Loading = false
	s.Tasks = tasks
	return s, []Effect{SaveSession{UserName: s.Username}}
}

func reduceUserFetched(s State, a UserFetched) (State, []Effect) {
	switch s.Phase {
	case LoggingIn:
		if a.UserName != s.PendingName {
			return s, nil
		}
		if a.Lookup.NotFound {
			return s, []Effect{CreateUser{UserName: a.UserName}}
		}
		tasks := a.Lookup.User.Todos
		if tasks == nil {
			tasks = []model.Task{}
		}
		return finishLogin(s, tasks)

	case LoggedIn:
		if a.UserName != s.Username || !s.Loading {
			return s, nil
		}
		s.Loading = false
		if a.Lookup.NotFound {
			s.Err = ErrLoadTasks
			return s, nil
		}
		tasks := a.Lookup.User.Todos
		if tasks == nil {
			tasks = []model.Task{}
		}
		s.Tasks = tasks
		return s, nil
	}
	return s, nil
}
