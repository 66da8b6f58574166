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

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/config"
	"github.com/mausham-bytes/nutrient-analyzer/routes"
	"github.com/mausham-bytes/nutrient-analyzer/services"
	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

func main() {
	cfg := config.Load()
	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer utils.SyncLogger()
	logger := utils.Log()

	gin.SetMode(cfg.GinMode)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalw("cannot create upload folder", "dir", cfg.UploadDir, "error", err)
	}

	vision := services.NewVisionService(cfg)
	nix := services.NewNutritionixService(cfg)

	var rek *services.RekognitionService
	if cfg.RecognitionConfigured() {
		client, err := utils.NewRekognitionClient(context.Background(), cfg.AWSRegion)
		if err != nil {
			logger.Warnw("rekognition disabled", "error", err)
		} else {
			rek = services.NewRekognitionService(client)
		}
	}
	food := services.NewFoodService(nix, rek)

	logger.Infow("configuration loaded",
		"upload_dir", cfg.UploadDir,
		"openai_configured", cfg.HasOpenAIKey(),
		"nutritionix_configured", cfg.NutritionixConfigured(),
		"recognition_configured", rek != nil,
	)
	if !cfg.HasOpenAIKey() {
		logger.Warn("OPENAI_API_KEY not set, /analyze will serve fallback data")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           routes.SetupRouter(cfg, vision, food),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("ListenAndServe failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
