package controller

import (
	"context"

	"todos-cli/internal/api"
	"todos-cli/internal/logging"
	"todos-cli/internal/model"
	"todos-cli/internal/store"

	"github.com/charmbracelet/log"
)

// Adapter is the subset of *api.Client the controller calls.
type Adapter interface {
	CreateUser(ctx context.Context, name string) bool
	GetUser(ctx context.Context, name string) api.UserLookup
	CreateTask(ctx context.Context, owner string, data model.TaskData) (model.Task, bool)
	ReplaceTaskList(ctx context.Context, owner string, tasks []model.Task) bool
	UpdateTaskByID(ctx context.Context, id int, data model.TaskData) (model.Task, bool)
	DeleteTaskByID(ctx context.Context, id int) bool
	DeleteAllTasks(ctx context.Context, ids []int) bool
}

// Deps are the capabilities effects run against. Session may be nil, in
// which case nothing is remembered between runs.
type Deps struct {
	API     Adapter
	Session store.Session
	Logger  *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

// Execute performs e and returns the resulting action, or nil when the
// effect has nothing to report.
func Execute(ctx context.Context, d Deps, e Effect) Action {
	switch e := e.(type) {
	case LoadSession:
		if d.Session == nil {
			return SessionLoaded{}
		}
		name, err := d.Session.Read(ctx)
		if err != nil {
			d.logger().Warn("read session failed", "err", err)
			return SessionLoaded{}
		}
		return SessionLoaded{UserName: name}

	case SaveSession:
		if d.Session != nil {
			if err := d.Session.Write(ctx, e.UserName); err != nil {
				d.logger().Warn("write session failed", "user", e.UserName, "err", err)
			}
		}
		return nil

	case ClearSession:
		if d.Session != nil {
			if err := d.Session.Clear(ctx); err != nil {
				d.logger().Warn("clear session failed", "err", err)
			}
		}
		return nil

	case FetchUser:
		return UserFetched{UserName: e.UserName, Lookup: d.API.GetUser(ctx, e.UserName)}

	case CreateUser:
		return UserCreated{UserName: e.UserName, OK: d.API.CreateUser(ctx, e.UserName)}

	case CreateTask:
		t, ok := d.API.CreateTask(ctx, e.Owner, e.Data)
		return TaskCreated{Owner: e.Owner, Task: t, OK: ok}

	case UpdateTask:
		t, ok := d.API.UpdateTaskByID(ctx, e.ID, e.Data)
		return TaskUpdated{ID: e.ID, Requested: e.Data, Task: t, OK: ok}

	case RemoveTask:
		return TaskDeleted{ID: e.ID, OK: d.API.DeleteTaskByID(ctx, e.ID)}

	case RemoveAllTasks:
		return AllTasksDeleted{OK: d.API.DeleteAllTasks(ctx, e.IDs)}

	case ReplaceTaskList:
		return TasksReplaced{Owner: e.Owner, OK: d.API.ReplaceTaskList(ctx, e.Owner, e.Tasks)}
	}
	d.logger().Error("unknown effect", "effect", e)
	return nil
}
