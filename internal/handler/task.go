package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/apper-canvas/kidroutine/internal/model"
	"github.com/apper-canvas/kidroutine/internal/routine"
	"github.com/apper-canvas/kidroutine/internal/store"
	"github.com/apper-canvas/kidroutine/internal/websocket"
)

type TaskHandler struct {
	taskStore *store.TaskStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskStore: ts, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type taskRequest struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Duration     int    `json:"duration"`
	Points       int    `json:"points"`
	Instructions string `json:"instructions"`
	Icon         string `json:"icon"`
}

func (r *taskRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	if !model.ValidCategory(r.Category) {
		return "unknown category"
	}
	if r.Duration == 0 {
		r.Duration = routine.DefaultTaskDuration
	}
	if r.Duration < 0 {
		return "duration must be positive"
	}
	if r.Points == 0 {
		r.Points = routine.DefaultTaskPoints
	}
	if r.Points < 0 {
		return "points must be positive"
	}
	return ""
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	task, err := h.taskStore.Create(req.Title, req.Category, req.Duration, req.Points, req.Instructions, req.Icon)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create task"})
		return
	}

	h.broadcast(websocket.NewMessage("task", "created", task.ID, nil))

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []model.Task
		err   error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		tasks, err = h.taskStore.ListByCategory(category)
	} else {
		tasks, err = h.taskStore.List()
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	task, err := h.taskStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.taskStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	task, err := h.taskStore.Update(id, req.Title, req.Category, req.Duration, req.Points, req.Instructions, req.Icon)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update task"})
		return
	}

	h.broadcast(websocket.NewMessage("task", "updated", id, nil))

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.taskStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	if err := h.taskStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete task"})
		return
	}

	h.broadcast(websocket.NewMessage("task", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}
