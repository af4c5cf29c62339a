// Package controller holds the to-do client's view state and the single
// transition function that drives it.
//
// Reduce is pure: it never performs I/O. Work such as HTTP calls and session
// writes is described by the Effects it returns; Execute performs one Effect
// and reports the outcome as a new Action to feed back into Reduce.
package controller

import "todos-cli/internal/model"

// MaxLabelLen bounds a task label, in runes.
const MaxLabelLen = 25

// User-visible error messages.
const (
	ErrCreateUser     = "could not create user"
	ErrLoadTasks      = "could not load tasks"
	ErrCreateTask     = "could not create task"
	ErrUpdateTask     = "could not update task"
	ErrDeleteTask     = "could not delete task"
	ErrDeleteAllTasks = "could not delete all tasks"
	ErrReplaceTasks   = "could not replace tasks"
)

type Phase int

const (
	LoggedOut Phase = iota
	LoggingIn
	LoggedIn
)

func (p Phase) String() string {
	switch p {
	case LoggedOut:
		return "logged-out"
	case LoggingIn:
		return "logging-in"
	case LoggedIn:
		return "logged-in"
	default:
		return "unknown"
	}
}

// Sub is the sub-state while LoggedIn.
type Sub int

const (
	Idle Sub = iota
	ClearConfirmPending
)

// State is everything the UI renders. Treat it as a value: Reduce never
// mutates the Tasks slice it was given.
type State struct {
	Phase Phase
	Sub   Sub

	// Username is set once login succeeds; PendingName while logging in.
	Username    string
	PendingName string

	NameDraft string
	TaskDraft string

	Tasks []model.Task

	Loading bool
	Err     string

	AutoLoginTried bool
}

func (s State) LoggedIn() bool { return s.Phase == LoggedIn }

func (s State) ConfirmingClear() bool {
	return s.Phase == LoggedIn && s.Sub == ClearConfirmPending
}

// PendingCount is the number of tasks not yet done.
func (s State) PendingCount() int { return model.PendingCount(s.Tasks) }
