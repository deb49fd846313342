package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/apper-canvas/kidroutine/internal/model"
	"github.com/apper-canvas/kidroutine/internal/routine"
	"github.com/apper-canvas/kidroutine/internal/store"
	"github.com/apper-canvas/kidroutine/internal/websocket"
)

type ChildHandler struct {
	childStore *store.ChildStore
	engine     *routine.Engine
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewChildHandler(cs *store.ChildStore, eng *routine.Engine, hub *websocket.Hub, logger *slog.Logger) *ChildHandler {
	return &ChildHandler{childStore: cs, engine: eng, hub: hub, logger: logger}
}

func (h *ChildHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type childRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Avatar string `json:"avatar"`
}

func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Age < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "age must not be negative"})
		return
	}

	child, err := h.childStore.Create(req.Name, req.Age, req.Avatar)
	if err != nil {
		h.logger.Error("create child", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create child"})
		return
	}

	h.broadcast(websocket.NewMessage("child", "created", child.ID, nil))

	writeJSON(w, http.StatusCreated, child)
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.childStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list children"})
		return
	}
	if children == nil {
		children = []model.Child{}
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	child, err := h.childStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if child == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.childStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	child, err := h.childStore.Update(id, req.Name, req.Age, req.Avatar)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update child"})
		return
	}

	h.broadcast(websocket.NewMessage("child", "updated", id, nil))

	writeJSON(w, http.StatusOK, child)
}

// Delete removes a child. Scheduled tasks and rewards owned by the child go
// with it via the schema's cascade.
func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.childStore.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete child"})
		return
	}

	h.broadcast(websocket.NewMessage("child", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChildHandler) ResetPoints(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	child, err := h.engine.ResetPoints(id)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	h.broadcast(websocket.NewMessage("child", "points_reset", id, nil))

	writeJSON(w, http.StatusOK, child)
}

// --- PIN routes ---

type pinRequest struct {
	PIN string `json:"pin"`
}

func (h *ChildHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.childStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get child"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if len(req.PIN) != 4 || !isDigits(req.PIN) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "PIN must be exactly 4 digits"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to hash PIN"})
		return
	}

	if err := h.childStore.SetPIN(id, string(hash)); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set PIN"})
		return
	}

	h.broadcast(websocket.NewMessage("child", "updated", id, nil))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChildHandler) ClearPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.childStore.ClearPIN(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to clear PIN"})
		return
	}

	h.broadcast(websocket.NewMessage("child", "updated", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChildHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	hash, err := h.childStore.GetPINHash(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get PIN"})
		return
	}
	if hash == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no PIN set"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PIN)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect PIN"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
