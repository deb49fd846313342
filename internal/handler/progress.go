package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/apper-canvas/kidroutine/internal/routine"
)

const defaultProgressWindow = 7

type ProgressHandler struct {
	engine *routine.Engine
	logger *slog.Logger
}

func NewProgressHandler(eng *routine.Engine, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{engine: eng, logger: logger}
}

// Get returns the daily breakdown, overall rate, streak, and all-time totals
// for one child. The window defaults to the last 7 days ending today.
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	days := defaultProgressWindow
	if v := r.URL.Query().Get("days"); v != "" {
		days, err = strconv.Atoi(v)
		if err != nil || days < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid days"})
			return
		}
	}

	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", asOf); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid as_of date"})
		return
	}

	progress, err := h.engine.ChildProgress(id, days, asOf)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
