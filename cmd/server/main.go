package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tle_zone_assist/internal/api"
	"tle_zone_assist/internal/app/service"
	"tle_zone_assist/internal/common/security"
	"tle_zone_assist/internal/domain/repository"
	"tle_zone_assist/internal/platform/cache"
	"tle_zone_assist/internal/platform/config"
	"tle_zone_assist/internal/platform/database"
	"tle_zone_assist/internal/platform/llm"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT verification
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	reviewRepo := repository.NewPgReviewRepository(database.DB)

	// 6. Initialize Services
	cfg := config.AppConfig
	entitlementService := service.NewEntitlementService(userRepo, cfg.EntitlementCacheTTL)
	defer entitlementService.Close()

	llmClient := llm.NewHTTPClient(llm.Options{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
	})
	aiService := service.NewAIService(
		entitlementService,
		submissionRepo,
		problemRepo,
		reviewRepo,
		cache.NewCompletionCache(cache.RDB, cfg.CompletionCacheTTL),
		cache.NewLocker(cache.RDB, "ai:review-lock:", cfg.ReviewLockTTL),
		llmClient,
		service.AIOptions{
			Model:               cfg.LLMModel,
			CompletionMaxTokens: cfg.CompletionMaxTokens,
			ReviewMaxTokens:     cfg.ReviewMaxTokens,
		},
	)
	submissionService := service.NewSubmissionService(submissionRepo)
	userService := service.NewUserService(userRepo, entitlementService)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(aiService, submissionService, userService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second, // reviews wait on the LLM
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
