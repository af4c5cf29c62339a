// Package playground is an in-memory stand-in for the public todo playground API.
package playground

import (
	"errors"
	"strings"
	"sync"

	"todos-cli/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
	ErrInvalid  = errors.New("invalid")
)

type userRecord struct {
	id      int
	todoIDs []int
}

type todoRecord struct {
	task  model.Task
	owner string
}

// Service holds users and their todos. Ids are global and never reused.
type Service struct {
	mu         sync.Mutex
	users      map[string]*userRecord
	todos      map[int]todoRecord
	lastUserID int
	lastID     int
}

func NewService() *Service {
	return &Service{
		users: map[string]*userRecord{},
		todos: map[int]todoRecord{},
	}
}

func (s *Service) CreateUser(name string) (model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.User{}, ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[name]; ok {
		return model.User{}, ErrExists
	}
	s.lastUserID++
	s.users[name] = &userRecord{id: s.lastUserID}
	return model.User{ID: s.lastUserID, Name: name, Todos: []model.Task{}}, nil
}

func (s *Service) GetUser(name string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[name]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return model.User{ID: u.id, Name: name, Todos: s.tasksLocked(u)}, nil
}

func (s *Service) AddTodo(owner string, data model.TaskData) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[owner]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	t := s.insertLocked(owner, u, data)
	return t, nil
}

// ReplaceTodos drops every todo the owner has and stores items in their place,
// with fresh ids.
func (s *Service) ReplaceTodos(owner string, items []model.TaskData) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[owner]
	if !ok {
		return nil, ErrNotFound
	}
	for _, id := range u.todoIDs {
		delete(s.todos, id)
	}
	u.todoIDs = nil
	out := make([]model.Task, 0, len(items))
	for _, d := range items {
		out = append(out, s.insertLocked(owner, u, d))
	}
	return out, nil
}

func (s *Service) UpdateTodo(id int, data model.TaskData) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.todos[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	rec.task.Label = data.Label
	rec.task.IsDone = data.IsDone
	s.todos[id] = rec
	return rec.task, nil
}

func (s *Service) DeleteTodo(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.todos[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.todos, id)
	if u, ok := s.users[rec.owner]; ok {
		kept := u.todoIDs[:0]
		for _, tid := range u.todoIDs {
			if tid != id {
				kept = append(kept, tid)
			}
		}
		u.todoIDs = kept
	}
	return nil
}

// TodoCount returns the number of stored todos across all users.
func (s *Service) TodoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}

func (s *Service) insertLocked(owner string, u *userRecord, data model.TaskData) model.Task {
	s.lastID++
	t := model.Task{ID: s.lastID, Label: data.Label, IsDone: data.IsDone}
	s.todos[t.ID] = todoRecord{task: t, owner: owner}
	u.todoIDs = append(u.todoIDs, t.ID)
	return t
}

func (s *Service) tasksLocked(u *userRecord) []model.Task {
	out := make([]model.Task, 0, len(u.todoIDs))
	for _, id := range u.todoIDs {
		if rec, ok := s.todos[id]; ok {
			out = append(out, rec.task)
		}
	}
	return out
}
