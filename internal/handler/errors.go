package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/apper-canvas/kidroutine/internal/routine"
)

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// Anything unrecognized is a storage fault: logged and reported as a 500
// without leaking details.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		notFound      routine.NotFoundError
		childNotFound routine.ChildNotFoundError
		slotOccupied  routine.SlotOccupiedError
		invalidSlot   routine.InvalidSlotError
		insufficient  routine.InsufficientPointsError
	)

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
	case errors.As(err, &childNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": childNotFound.Error()})
	case errors.As(err, &slotOccupied):
		writeJSON(w, http.StatusConflict, map[string]string{"error": slotOccupied.Error()})
	case errors.As(err, &invalidSlot):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidSlot.Error()})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": insufficient.Error()})
	default:
		logger.Error("engine operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
