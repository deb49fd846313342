package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/apper-canvas/kidroutine/internal/model"
	"github.com/apper-canvas/kidroutine/internal/routine"
	"github.com/apper-canvas/kidroutine/internal/websocket"
)

type ScheduleHandler struct {
	engine *routine.Engine
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewScheduleHandler(eng *routine.Engine, hub *websocket.Hub, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{engine: eng, hub: hub, logger: logger}
}

func (h *ScheduleHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type scheduleRequest struct {
	ChildID int64  `json:"child_id"`
	TaskID  int64  `json:"task_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// Create places a task on a child's schedule (the drop half of drag-and-drop).
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	st, err := h.engine.Schedule(req.ChildID, req.Date, req.Time, req.TaskID)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	h.broadcast(websocket.NewMessage("scheduled_task", "created", st.ID, map[string]any{
		"child_id": st.ChildID,
		"date":     st.Date,
	}))

	writeJSON(w, http.StatusCreated, st)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.engine.Unschedule(id); err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	h.broadcast(websocket.NewMessage("scheduled_task", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *ScheduleHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !model.ValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}

	st, err := h.engine.SetStatus(id, req.Status)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	h.broadcast(websocket.NewMessage("scheduled_task", "status_changed", id, map[string]any{
		"child_id": st.ChildID,
		"status":   st.Status,
	}))

	writeJSON(w, http.StatusOK, st)
}

// SlotsForDay renders a child's full slot grid for one date.
func (h *ScheduleHandler) SlotsForDay(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	slots, err := h.engine.SlotsForDay(id, date)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// Current resolves the task whose time window contains "now". Responds with
// JSON null when nothing is due.
func (h *ScheduleHandler) Current(w http.ResponseWriter, r *http.Request) {
	id, date, nowMins, ok := h.resolveParams(w, r)
	if !ok {
		return
	}

	task, err := h.engine.CurrentTask(id, date, nowMins)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Next resolves the earliest pending task strictly after "now".
func (h *ScheduleHandler) Next(w http.ResponseWriter, r *http.Request) {
	id, date, nowMins, ok := h.resolveParams(w, r)
	if !ok {
		return
	}

	task, err := h.engine.NextTask(id, date, nowMins)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// resolveParams reads the child id plus optional date and now query params,
// defaulting both to the local wall clock so tests can pin them explicitly.
func (h *ScheduleHandler) resolveParams(w http.ResponseWriter, r *http.Request) (id int64, date string, nowMins int, ok bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, "", 0, false
	}

	now := time.Now()
	date = r.URL.Query().Get("date")
	if date == "" {
		date = now.Format("2006-01-02")
	}

	nowMins = routine.MinutesOfDay(now)
	if clock := r.URL.Query().Get("now"); clock != "" {
		nowMins, err = routine.ParseClock(clock)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid now time"})
			return 0, "", 0, false
		}
	}
	return id, date, nowMins, true
}
