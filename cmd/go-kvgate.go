package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adfharrison1/go-kvgate/pkg/api"
	"github.com/adfharrison1/go-kvgate/pkg/config"
	"github.com/adfharrison1/go-kvgate/pkg/gateway"
	"github.com/adfharrison1/go-kvgate/pkg/server"
	"github.com/adfharrison1/go-kvgate/pkg/storage"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The store is created once and shared by every request
	store, err := storage.New(cfg.Storage())
	if err != nil {
		log.Fatalf("Failed to create store (backend=%s): %v", cfg.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("ERROR: Closing store failed: %v", err)
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.Ping(pingCtx)
	cancelPing()
	if err != nil {
		store.Close()
		log.Fatalf("Failed to connect to store (backend=%s): %v", cfg.Backend, err)
	}
	log.Printf("INFO: Connected to %s store", cfg.Backend)

	handler := api.NewHandler(gateway.New(store), store,
		api.WithSeedFile(cfg.SeedFile),
		api.WithBackendName(cfg.Backend),
		api.WithMaxBodyBytes(cfg.MaxBody),
	)
	srv := server.NewServer(handler)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting go-kvgate server on %s", cfg.Addr())
		log.Printf("API endpoints available at http://localhost:%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
