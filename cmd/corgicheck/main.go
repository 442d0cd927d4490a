package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwkim/corgicheck/internal/database"
	"github.com/jwkim/corgicheck/internal/logging"
	"github.com/jwkim/corgicheck/internal/server"
)

func main() {
	logger := logging.Setup(os.Getenv("CORGICHECK_LOG_LEVEL"))

	port := os.Getenv("CORGICHECK_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CORGICHECK_DB_PATH")
	if dbPath == "" {
		dbPath = "corgicheck.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, logger)

	// Expired sessions pile up between deploys on a long-lived kiosk box.
	sessionCleanup := time.NewTicker(time.Hour)
	defer sessionCleanup.Stop()
	go func() {
		for range sessionCleanup.C {
			if err := srv.SessionStore().DeleteExpired(); err != nil {
				logger.Warn("session cleanup", "error", err)
			}
			srv.RateLimiter().Cleanup()
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Corgi Check running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
