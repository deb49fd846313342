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

type RewardHandler struct {
	rewardStore *store.RewardStore
	childStore  *store.ChildStore
	engine      *routine.Engine
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewRewardHandler(rs *store.RewardStore, cs *store.ChildStore, eng *routine.Engine, hub *websocket.Hub, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{rewardStore: rs, childStore: cs, engine: eng, hub: hub, logger: logger}
}

func (h *RewardHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type rewardRequest struct {
	ChildID    int64  `json:"child_id"`
	Title      string `json:"title"`
	PointsCost int    `json:"points_cost"`
	Type       string `json:"type"`
	Icon       string `json:"icon"`
}

func (r *rewardRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	if r.PointsCost <= 0 {
		return "points_cost must be positive"
	}
	if !model.ValidRewardType(r.Type) {
		return "unknown reward type"
	}
	return ""
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	child, err := h.childStore.GetByID(req.ChildID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check child"})
		return
	}
	if child == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "child not found"})
		return
	}

	reward, err := h.rewardStore.Create(req.ChildID, req.Title, req.PointsCost, req.Type, req.Icon)
	if err != nil {
		h.logger.Error("create reward", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create reward"})
		return
	}

	h.broadcast(websocket.NewMessage("reward", "created", reward.ID, map[string]any{
		"child_id": reward.ChildID,
	}))

	writeJSON(w, http.StatusCreated, reward)
}

// ListByChild returns a child's reward catalog, cheapest first.
func (h *RewardHandler) ListByChild(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	rewards, err := h.rewardStore.ListByChild(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list rewards"})
		return
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

// Presets returns the built-in catalog parents can clone rewards from.
func (h *RewardHandler) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.PresetRewards)
}

func (h *RewardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.rewardStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get reward"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reward not found"})
		return
	}

	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	reward, err := h.rewardStore.Update(id, req.Title, req.PointsCost, req.Type, req.Icon)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update reward"})
		return
	}

	h.broadcast(websocket.NewMessage("reward", "updated", id, nil))

	writeJSON(w, http.StatusOK, reward)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.rewardStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get reward"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reward not found"})
		return
	}

	if err := h.rewardStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete reward"})
		return
	}

	h.broadcast(websocket.NewMessage("reward", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

// Redeem debits the reward's cost from the child's balance; the reward stays
// in the catalog for next time.
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		ChildID int64 `json:"child_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	child, err := h.engine.RedeemReward(req.ChildID, id)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}

	h.broadcast(websocket.NewMessage("reward", "redeemed", id, map[string]any{
		"child_id": child.ID,
		"points":   child.Points,
	}))

	writeJSON(w, http.StatusOK, child)
}
