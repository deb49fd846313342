package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apper-canvas/kidroutine/internal/database"
	"github.com/apper-canvas/kidroutine/internal/logging"
	"github.com/apper-canvas/kidroutine/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("KIDROUTINE_LOG_LEVEL"))

	port := os.Getenv("KIDROUTINE_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("KIDROUTINE_DB_PATH")
	if dbPath == "" {
		dbPath = "kidroutine.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("kidroutine running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
