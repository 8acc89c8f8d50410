package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mrmelo_sanctuary/config"
	"mrmelo_sanctuary/db"
	"mrmelo_sanctuary/handlers"
	"mrmelo_sanctuary/logger"
	"mrmelo_sanctuary/repository"
	"mrmelo_sanctuary/scheduler"
	"mrmelo_sanctuary/services"
	"mrmelo_sanctuary/views"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	if err := db.InitWithConfig(cfg); err != nil {
		logger.Error("Database init failed", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer db.DB.Close()
	logger.Info("Database connected",
		"driver", cfg.DB.Driver,
		"max_open_conns", cfg.DB.MaxOpenConns,
		"max_idle_conns", cfg.DB.MaxIdleConns,
		"conn_max_lifetime", cfg.DB.ConnMaxLifetime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := services.NewGeminiGenerator(ctx, cfg)
	if err != nil {
		logger.Error("Gemini client init failed", "error", err)
		os.Exit(1)
	}

	store := repository.NewContentRepository(db.DB)
	aggregator := services.NewAggregator(store, cfg.Content.PerTypeLimit)
	builder := services.NewPromptBuilder(cfg.Content.DescriptionMaxRunes)
	inference := services.NewInferenceClient(generator, services.InferenceOptions{
		Timeout:         time.Duration(cfg.Gemini.TimeoutSec) * time.Second,
		BreakerFailures: uint32(cfg.Gemini.BreakerFails),
		BreakerOpen:     time.Duration(cfg.Gemini.BreakerOpenSec) * time.Second,
	})

	recommendations := services.NewRecommendationService(store, aggregator, builder, inference)
	patterns := services.NewPatternService(aggregator, builder, inference)
	content := services.NewContentService(store, cfg.Content.PerTypeLimit)

	renderer, err := views.NewRenderer()
	if err != nil {
		logger.Error("Template parsing failed", "error", err)
		os.Exit(1)
	}
	explorer := views.NewExplorer(recommendations, content, views.ExplorerOptions{
		RetryInterval: time.Duration(cfg.Explorer.RetryIntervalSec) * time.Second,
		SlotIdle:      time.Duration(cfg.Explorer.SlotIdleMin) * time.Minute,
	})

	router := handlers.NewRouter(cfg, handlers.Dependencies{
		DB:              db.DB,
		Recommendations: recommendations,
		Patterns:        patterns,
		Content:         content,
		Explorer:        explorer,
		Renderer:        renderer,
	})

	// 启动后台任务
	sched := scheduler.Start(ctx, cfg, content, explorer)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(cfg.Timeouts.RequestSec) * time.Second,
		ReadTimeout:       time.Duration(cfg.Timeouts.RequestSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.Timeouts.ResponseSec) * time.Second,
		IdleTimeout:       time.Duration(cfg.Timeouts.IdleSec) * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", serverAddr)
		logger.Info("Swagger docs available", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	sched.Wait()
}
