package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/apper-canvas/kidroutine/internal/handler"
	"github.com/apper-canvas/kidroutine/internal/middleware"
	"github.com/apper-canvas/kidroutine/internal/routine"
	"github.com/apper-canvas/kidroutine/internal/store"
	ws "github.com/apper-canvas/kidroutine/internal/websocket"
)

type Server struct {
	db        *sql.DB
	hub       *ws.Hub
	childH    *handler.ChildHandler
	taskH     *handler.TaskHandler
	scheduleH *handler.ScheduleHandler
	rewardH   *handler.RewardHandler
	progressH *handler.ProgressHandler
	logger    *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	childStore := store.NewChildStore(db)
	taskStore := store.NewTaskStore(db)
	rewardStore := store.NewRewardStore(db)

	engine := routine.New(db, logger.With("component", "engine"))

	return &Server{
		db:        db,
		hub:       hub,
		childH:    handler.NewChildHandler(childStore, engine, hub, logger.With("component", "child")),
		taskH:     handler.NewTaskHandler(taskStore, hub, logger.With("component", "task")),
		scheduleH: handler.NewScheduleHandler(engine, hub, logger.With("component", "schedule")),
		rewardH:   handler.NewRewardHandler(rewardStore, childStore, engine, hub, logger.With("component", "reward")),
		progressH: handler.NewProgressHandler(engine, logger.With("component", "progress")),
		logger:    logger,
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Children
	mux.HandleFunc("GET /api/children", s.childH.List)
	mux.HandleFunc("POST /api/children", s.childH.Create)
	mux.HandleFunc("GET /api/children/{id}", s.childH.Get)
	mux.HandleFunc("PUT /api/children/{id}", s.childH.Update)
	mux.HandleFunc("DELETE /api/children/{id}", s.childH.Delete)
	mux.HandleFunc("POST /api/children/{id}/reset-points", s.childH.ResetPoints)

	// Child-mode PIN gate
	mux.HandleFunc("POST /api/children/{id}/pin", s.childH.SetPIN)
	mux.HandleFunc("DELETE /api/children/{id}/pin", s.childH.ClearPIN)
	mux.HandleFunc("POST /api/children/{id}/pin/verify", s.childH.VerifyPIN)

	// Task library
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/tasks/{id}", s.taskH.Get)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Schedule
	mux.HandleFunc("POST /api/schedule", s.scheduleH.Create)
	mux.HandleFunc("DELETE /api/scheduled-tasks/{id}", s.scheduleH.Delete)
	mux.HandleFunc("PUT /api/scheduled-tasks/{id}/status", s.scheduleH.SetStatus)
	mux.HandleFunc("GET /api/children/{id}/schedule", s.scheduleH.SlotsForDay)
	mux.HandleFunc("GET /api/children/{id}/schedule/current", s.scheduleH.Current)
	mux.HandleFunc("GET /api/children/{id}/schedule/next", s.scheduleH.Next)

	// Rewards
	mux.HandleFunc("GET /api/rewards/presets", s.rewardH.Presets)
	mux.HandleFunc("POST /api/rewards", s.rewardH.Create)
	mux.HandleFunc("PUT /api/rewards/{id}", s.rewardH.Update)
	mux.HandleFunc("DELETE /api/rewards/{id}", s.rewardH.Delete)
	mux.HandleFunc("POST /api/rewards/{id}/redeem", s.rewardH.Redeem)
	mux.HandleFunc("GET /api/children/{id}/rewards", s.rewardH.ListByChild)

	// Progress
	mux.HandleFunc("GET /api/children/{id}/progress", s.progressH.Get)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
