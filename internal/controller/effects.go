package controller

import "todos-cli/internal/model"

// Effect is work requested by Reduce.
type Effect interface{ isEffect() }

type (
	LoadSession  struct{}
	SaveSession  struct{ UserName string }
	ClearSession struct{}

	FetchUser  struct{ UserName string }
	CreateUser struct{ UserName string }

	CreateTask struct {
		Owner string
		Data  model.TaskData
	}
	UpdateTask struct {
		ID   int
		Data model.TaskData
	}
	RemoveTask     struct{ ID int }
	RemoveAllTasks struct{ IDs []int }

	ReplaceTaskList struct {
		Owner string
		Tasks []model.Task
	}
)

func (LoadSession) isEffect()     {}
func (SaveSession) isEffect()     {}
func (ClearSession) isEffect()    {}
func (FetchUser) isEffect()       {}
func (CreateUser) isEffect()      {}
func (CreateTask) isEffect()      {}
func (UpdateTask) isEffect()      {}
func (RemoveTask) isEffect()      {}
func (RemoveAllTasks) isEffect()  {}
func (ReplaceTaskList) isEffect() {}
