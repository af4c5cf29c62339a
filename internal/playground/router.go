package playground

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"todos-cli/internal/model"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type errorBody struct {
	Detail string `json:"detail"`
}

// NewRouter exposes svc over the same routes as the public playground.
func NewRouter(svc *Service, m *Metrics, logger *log.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(instrument(m))
	}
	if logger != nil {
		r.Use(requestLogger(logger))
	}
	if m != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	}

	r.Post("/users/{name}", createUserHandler(svc))
	r.Get("/users/{name}", getUserHandler(svc))
	r.Post("/todos/{name}", createTodoHandler(svc))
	r.Put("/todos/{ref}", putTodoHandler(svc))
	r.Delete("/todos/{id}", deleteTodoHandler(svc))
	return r
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.CreateUser(chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, err, "User")
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetUser(chi.URLParam(r, "name"))
		if err != nil {
			writeServiceError(w, err, "User")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func createTodoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.TaskData
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "invalid todo body"})
			return
		}
		defer r.Body.Close()

		t, err := svc.AddTodo(chi.URLParam(r, "name"), req)
		if err != nil {
			writeServiceError(w, err, "User")
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

// putTodoHandler serves both PUT forms of /todos/{ref}: a JSON array replaces
// the collection of user {ref}, an object updates todo {ref}.
func putTodoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Detail: "unreadable body"})
			return
		}
		defer r.Body.Close()
		ref := chi.URLParam(r, "ref")

		if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
			var items []model.TaskData
			if err := json.Unmarshal(trimmed, &items); err != nil {
				writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "invalid todo list"})
				return
			}
			out, err := svc.ReplaceTodos(ref, items)
			if err != nil {
				writeServiceError(w, err, "User")
				return
			}
			writeJSON(w, http.StatusOK, out)
			return
		}

		id, err := strconv.Atoi(ref)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "todo id must be an integer"})
			return
		}
		var req model.TaskData
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "invalid todo body"})
			return
		}
		t, err := svc.UpdateTodo(id, req)
		if err != nil {
			writeServiceError(w, err, "Todo")
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func deleteTodoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "todo id must be an integer"})
			return
		}
		if err := svc.DeleteTodo(id); err != nil {
			writeServiceError(w, err, "Todo")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error, kind string) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: kind + " not found"})
	case errors.Is(err, ErrExists):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: kind + " already exists"})
	case errors.Is(err, ErrInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "invalid " + kind})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func instrument(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
			m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "took", time.Since(start))
		})
	}
}
