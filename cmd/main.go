package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodmanager/config"
	"foodmanager/controllers"
	"foodmanager/routes"
	"foodmanager/services"
	"foodmanager/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := utils.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDatabase(cfg, log)
	if err != nil {
		return err
	}

	var uploader controllers.ImageUploader
	if cfg.S3Bucket != "" {
		s3u, err := utils.NewS3ImageUploader(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.PublicAssetURL)
		if err != nil {
			return err
		}
		uploader = s3u
	} else {
		log.Info("S3_BUCKET not set, image uploads disabled")
	}

	events := services.NewFoodEvents(log)
	r := routes.SetupRouter(routes.Deps{
		Config:   cfg,
		Log:      log,
		Foods:    services.NewFoodService(db, events),
		Events:   events,
		Sessions: services.NewSessionManager(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, []byte(cfg.JWTSecret), config.SessionTTL),
		Uploader: uploader,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
