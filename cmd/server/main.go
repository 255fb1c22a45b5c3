package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kudryavtseva/contentforge/internal/agent"
	"github.com/kudryavtseva/contentforge/internal/api"
	"github.com/kudryavtseva/contentforge/internal/config"
	"github.com/kudryavtseva/contentforge/internal/pipeline"
	"github.com/kudryavtseva/contentforge/internal/publish"
	"github.com/kudryavtseva/contentforge/internal/store"
	"github.com/kudryavtseva/contentforge/internal/worker"
)

func main() {
	cfg := config.Load()

	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	st, err := store.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer st.Close()
	log.Println("Connected to Redis")

	client, err := agent.NewChatClient(agent.Config{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		log.Fatalf("Failed to create chat client: %v", err)
	}

	runner := pipeline.New(agent.New(client), st, publish.New(cfg.OutputDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(st, runner.Run, cfg.WorkerCount)
	pool.Start(ctx)

	handler := api.NewHandler(st, true)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	pool.Stop()
	log.Println("Server stopped")
}
