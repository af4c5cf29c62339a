package controller

import (
	"todos-cli/internal/api"
	"todos-cli/internal/model"
)

// Action is an input to Reduce: either something the user did or the result
// of an Effect.
type Action interface{ isAction() }

// User actions.
type (
	// Init runs once per process and triggers auto-login from the session.
	Init struct{}

	EditName    struct{ Text string }
	SubmitLogin struct{ Name string }

	EditTask struct{ Text string }
	// SubmitTask creates a task from the current TaskDraft.
	SubmitTask struct{}

	ToggleTask struct{ Index int }
	DeleteTask struct{ Index int }

	RequestClear struct{}
	ConfirmClear struct{}
	CancelClear  struct{}

	Refresh      struct{}
	ReplaceTasks struct{ Tasks []model.Task }
	Logout       struct{}
)

// Result actions, produced by Execute.
type (
	SessionLoaded struct{ UserName string }

	UserFetched struct {
		UserName string
		Lookup   api.UserLookup
	}

	UserCreated struct {
		UserName string
		OK       bool
	}

	TaskCreated struct {
		Owner string
		Task  model.Task
		OK    bool
	}

	TaskUpdated struct {
		ID        int
		Requested model.TaskData
		Task      model.Task
		OK        bool
	}

	TaskDeleted struct {
		ID int
		OK bool
	}

	AllTasksDeleted struct{ OK bool }

	TasksReplaced struct {
		Owner string
		OK    bool
	}
)

func (Init) isAction()         {}
func (EditName) isAction()     {}
func (SubmitLogin) isAction()  {}
func (EditTask) isAction()     {}
func (SubmitTask) isAction()   {}
func (ToggleTask) isAction()   {}
func (DeleteTask) isAction()   {}
func (RequestClear) isAction() {}
func (ConfirmClear) isAction() {}
func (CancelClear) isAction()  {}
func (Refresh) isAction()      {}
func (ReplaceTasks) isAction() {}
func (Logout) isAction()       {}

func (SessionLoaded) isAction()   {}
func (UserFetched) isAction()     {}
func (UserCreated) isAction()     {}
func (TaskCreated) isAction()     {}
func (TaskUpdated) isAction()     {}
func (TaskDeleted) isAction()     {}
func (AllTasksDeleted) isAction() {}
func (TasksReplaced) isAction()   {}
