// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"slices"
	"sync"

	"todos-cli/internal/api"
	"todos-cli/internal/model"
)

// FakeAPI is an in-memory implementation of the controller's Adapter.
// It records every call so tests can assert on what was (not) requested.
type FakeAPI struct {
	mu     sync.Mutex
	users  map[string][]model.Task
	nextID int
	calls  []string

	// Error injection for testing
	FailCreateUser  bool
	FailGetUser     bool
	FailCreateTask  bool
	FailReplace     bool
	FailUpdate      bool
	FailDelete      bool
	FailDeleteAllAt int // 1-based position of the failing delete in DeleteAllTasks; 0 = never
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{users: map[string][]model.Task{}}
}

// AddUser registers name with the given labels as tasks.
func (f *FakeAPI) AddUser(name string, labels ...string) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := []model.Task{}
	for _, l := range labels {
		f.nextID++
		tasks = append(tasks, model.Task{ID: f.nextID, Label: l})
	}
	f.users[name] = tasks
	return slices.Clone(tasks)
}

// Tasks returns the server-side tasks of name.
func (f *FakeAPI) Tasks(name string) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.users[name])
}

func (f *FakeAPI) HasUser(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[name]
	return ok
}

// Calls returns the names of adapter methods called so far, in order.
func (f *FakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallCount returns how many times op was called.
func (f *FakeAPI) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *FakeAPI) record(op string) {
	f.calls = append(f.calls, op)
}

func (f *FakeAPI) CreateUser(ctx context.Context, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateUser")
	if f.FailCreateUser {
		return false
	}
	if _, ok := f.users[name]; ok {
		return false
	}
	f.users[name] = []model.Task{}
	return true
}

func (f *FakeAPI) GetUser(ctx context.Context, name string) api.UserLookup {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetUser")
	if f.FailGetUser {
		return api.UserLookup{NotFound: true, User: model.User{Todos: []model.Task{}}}
	}
	tasks, ok := f.users[name]
	if !ok {
		return api.UserLookup{NotFound: true}
	}
	return api.UserLookup{User: model.User{Name: name, Todos: slices.Clone(tasks)}}
}

func (f *FakeAPI) CreateTask(ctx context.Context, owner string, data model.TaskData) (model.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateTask")
	if f.FailCreateTask {
		return model.Task{}, false
	}
	if _, ok := f.users[owner]; !ok {
		return model.Task{}, false
	}
	f.nextID++
	t := model.Task{ID: f.nextID, Label: data.Label, IsDone: data.IsDone}
	f.users[owner] = append(f.users[owner], t)
	return t, true
}

func (f *FakeAPI) ReplaceTaskList(ctx context.Context, owner string, tasks []model.Task) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ReplaceTaskList")
	if f.FailReplace {
		return false
	}
	if _, ok := f.users[owner]; !ok {
		return false
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		f.nextID++
		out = append(out, model.Task{ID: f.nextID, Label: t.Label, IsDone: t.IsDone})
	}
	f.users[owner] = out
	return true
}

func (f *FakeAPI) UpdateTaskByID(ctx context.Context, id int, data model.TaskData) (model.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateTaskByID")
	if f.FailUpdate {
		return model.Task{}, false
	}
	for name, tasks := range f.users {
		if i := model.IndexOf(tasks, id); i >= 0 {
			tasks[i] = model.Task{ID: id, Label: data.Label, IsDone: data.IsDone}
			f.users[name] = tasks
			return tasks[i], true
		}
	}
	return model.Task{}, false
}

func (f *FakeAPI) DeleteTaskByID(ctx context.Context, id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteTaskByID")
	if f.FailDelete {
		return false
	}
	return f.deleteLocked(id)
}

func (f *FakeAPI) DeleteAllTasks(ctx context.Context, ids []int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteAllTasks")
	for i, id := range ids {
		if f.FailDeleteAllAt == i+1 {
			return false
		}
		if !f.deleteLocked(id) {
			return false
		}
	}
	return true
}

func (f *FakeAPI) deleteLocked(id int) bool {
	for name, tasks := range f.users {
		if i := model.IndexOf(tasks, id); i >= 0 {
			f.users[name] = slices.Delete(tasks, i, i+1)
			return true
		}
	}
	return false
}
