// Package api wraps the todo playground REST API.
//
// Every call maps its outcome to a plain value: a bool, a record plus ok flag,
// or a UserLookup. Failures are logged here and never returned as errors;
// callers cannot tell network errors from HTTP errors, except that GetUser
// reports a 404 as NotFound.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"todos-cli/internal/logging"
	"todos-cli/internal/model"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the public playground API.
const DefaultBaseURL = "https://playground.4geeks.com/todo"

// Client talks to one playground origin. It holds no per-user state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on a copy of the current HTTP
// client, so it composes with WithHTTPClient in either order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// UserLookup is the outcome of GetUser.
type UserLookup struct {
	NotFound bool
	User     model.User
}

// CreateUser registers name with an empty task list.
func (c *Client) CreateUser(ctx context.Context, name string) bool {
	path := "/users/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPost, path, []model.Task{}, nil); err != nil {
		c.logger.Error("create user failed", "op", "createUser", "user", name, "err", err)
		return false
	}
	return true
}

// GetUser fetches name's record. A 404 is a normal NotFound result; any other
// failure is logged and also reported as NotFound with an empty task list.
func (c *Client) GetUser(ctx context.Context, name string) UserLookup {
	path := "/users/" + url.PathEscape(name)
	var u model.User
	err := c.do(ctx, http.MethodGet, path, nil, &u)
	if err == nil {
		return UserLookup{User: u}
	}
	if IsNotFound(err) {
		c.logger.Debug("user not found", "op", "getUser", "user", name)
		return UserLookup{NotFound: true}
	}
	c.logger.Error("get user failed", "op", "getUser", "user", name, "err", err)
	return UserLookup{NotFound: true, User: model.User{Todos: []model.Task{}}}
}

// CreateTask adds a task for owner and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, owner string, data model.TaskData) (model.Task, bool) {
	path := "/todos/" + url.PathEscape(owner)
	var t model.Task
	if err := c.do(ctx, http.MethodPost, path, data, &t); err != nil {
		c.logger.Error("create task failed", "op", "createTask", "user", owner, "err", err)
		return model.Task{}, false
	}
	return t, true
}

// ReplaceTaskList overwrites owner's whole collection.
func (c *Client) ReplaceTaskList(ctx context.Context, owner string, tasks []model.Task) bool {
	if tasks == nil {
		tasks = []model.Task{}
	}
	path := "/todos/" + url.PathEscape(owner)
	if err := c.do(ctx, http.MethodPut, path, tasks, nil); err != nil {
		c.logger.Error("replace tasks failed", "op", "replaceTaskList", "user", owner, "err", err)
		return false
	}
	return true
}

// UpdateTaskByID replaces the fields of task id and returns the stored record.
func (c *Client) UpdateTaskByID(ctx context.Context, id int, data model.TaskData) (model.Task, bool) {
	path := "/todos/" + strconv.Itoa(id)
	var t model.Task
	if err := c.do(ctx, http.MethodPut, path, data, &t); err != nil {
		c.logger.Error("update task failed", "op", "updateTaskById", "id", id, "err", err)
		return model.Task{}, false
	}
	return t, true
}

func (c *Client) DeleteTaskByID(ctx context.Context, id int) bool {
	path := "/todos/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		c.logger.Error("delete task failed", "op", "deleteTaskById", "id", id, "err", err)
		return false
	}
	return true
}

// DeleteAllTasks deletes ids one at a time, in order, and stops at the first
// failure. Deletions that already happened are not undone.
func (c *Client) DeleteAllTasks(ctx context.Context, ids []int) bool {
	for i, id := range ids {
		path := "/todos/" + strconv.Itoa(id)
		if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
			c.logger.Error("delete all tasks aborted", "op", "deleteAllTasks", "id", id, "deleted", i, "remaining", len(ids)-i, "err", err)
			return false
		}
	}
	return true
}

// StatusError is a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	se, ok := err.(*StatusError)
	return ok && se.StatusCode == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
