package model

// Task is a single to-do entry as the playground API stores it.
type Task struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

// TaskData is the mutable part of a Task, sent on create and update.
type TaskData struct {
	Label  string `json:"label"`
	IsDone bool   `json:"is_done"`
}

func (t Task) Data() TaskData {
	return TaskData{Label: t.Label, IsDone: t.IsDone}
}

// User is the record returned by GET /users/{name}.
type User struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name"`
	Todos []Task `json:"todos"`
}

// PendingCount returns the number of tasks not marked done.
func PendingCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.IsDone {
			n++
		}
	}
	return n
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
