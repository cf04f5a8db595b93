package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parlorgames/mafia/internal/common/clock"
	"github.com/parlorgames/mafia/internal/common/uuid"
	"github.com/parlorgames/mafia/internal/config"
	"github.com/parlorgames/mafia/internal/handlers/ws"
	messageRepo "github.com/parlorgames/mafia/internal/repositories/message"
	sessionRepo "github.com/parlorgames/mafia/internal/repositories/session"
	"github.com/parlorgames/mafia/internal/services/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	messages, err := messageRepo.NewRedis(&messageRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create message repository: %v", err)
	}

	// Report games that were mid-flight when the process last stopped.
	// Their rosters and phases survive in Redis; their countdowns resume
	// on the next participant action.
	active, err := sessions.GetActiveSessions(pingCtx, &sessionRepo.GetActiveSessionsInput{})
	if err != nil {
		log.Fatalf("Failed to list active sessions: %v", err)
	}
	for _, sess := range active.Sessions {
		log.Printf("Resuming session %s in phase %s with %d participants", sess.ID, sess.Phase, len(sess.Participants))
	}

	// Initialize the hub before the service: it is the service's notifier
	hub := ws.NewHub()

	gameSvc, err := game.NewService(&game.Config{
		MinParticipants: cfg.MinParticipants,
		TickInterval:    time.Second,
	}, sessions, messages, hub, &clock.DefaultClock{}, uuid.New())
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	handler, err := ws.New(&ws.Config{
		GameService: gameSvc,
		Hub:         hub,
	})
	if err != nil {
		log.Fatalf("Failed to create websocket handler: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", handler)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	go func() {
		log.Printf("Listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server has been shut down")
}
