package cli

import (
	"fmt"
	"strings"

	"todos-cli/internal/controller"
	"todos-cli/internal/model"
)

type userView struct {
	User     string `json:"user"`
	LoggedIn bool   `json:"loggedIn"`
}

func (v userView) Text() string {
	if !v.LoggedIn {
		return "not logged in"
	}
	return "logged in as " + v.User
}

type taskListView struct {
	User    string       `json:"user"`
	Tasks   []model.Task `json:"tasks"`
	Pending int          `json:"pending"`
}

func newTaskListView(s controller.State) taskListView {
	tasks := s.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	return taskListView{User: s.Username, Tasks: tasks, Pending: model.PendingCount(tasks)}
}

func (v taskListView) Text() string {
	var b strings.Builder
	if len(v.Tasks) == 0 {
		b.WriteString("No tasks, add a task\n")
	}
	for i, t := range v.Tasks {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, checkbox(t.IsDone), t.Label)
	}
	if v.Pending == 1 {
		b.WriteString("1 item left")
	} else {
		fmt.Fprintf(&b, "%d items left", v.Pending)
	}
	return b.String()
}

type taskView struct {
	Position int        `json:"position"`
	Task     model.Task `json:"task"`
}

func (v taskView) Text() string {
	return fmt.Sprintf("%d. %s %s", v.Position, checkbox(v.Task.IsDone), v.Task.Label)
}

type clearView struct {
	Deleted int `json:"deleted"`
}

func (v clearView) Text() string {
	return fmt.Sprintf("deleted %d task(s)", v.Deleted)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
