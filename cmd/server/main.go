package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darzihq/darzi/internal/config"
	"github.com/darzihq/darzi/internal/server"
	"github.com/darzihq/darzi/internal/store"

	"github.com/joho/godotenv"
)

var initOnlyFlag = flag.Bool("init-only", false, "Initialize the data store and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("open backend: %v", err)
	}
	st := store.New(backend)
	if err := st.Initialize(); err != nil {
		log.Fatalf("initialize store: %v", err)
	}
	if _, err := st.EnsureDefaultMember(); err != nil {
		log.Fatalf("ensure default team member: %v", err)
	}
	if cfg.FieldPolicy != "" {
		// env wins over the persisted setting on every boot; see config.Load
		log.Printf("Applying measurement field policy from environment: %s", cfg.FieldPolicy)
		if _, err := st.UpdateSettings(store.SettingsUpdate{MeasurementFieldPolicy: &cfg.FieldPolicy}); err != nil {
			log.Fatalf("apply measurement field policy: %v", err)
		}
	}
	if initOnlyFlag != nil && *initOnlyFlag {
		log.Println("store initialized; exiting as requested")
		return
	}

	st.Subscribe(func(ev store.Event) {
		if ev.ID != 0 {
			log.Printf("store: %s %s id=%d", ev.Kind, ev.Op, ev.ID)
			return
		}
		log.Printf("store: %s %s", ev.Kind, ev.Op)
	})

	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(st)}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

func openBackend(cfg config.Config) (store.Backend, error) {
	if cfg.DatabaseDSN != "" {
		return store.OpenSQL(cfg.DatabaseDSN)
	}
	return store.NewFileBackend(cfg.DataFile), nil
}
