package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/api"
	"smart-fuel-crm/internal/app"
	"smart-fuel-crm/internal/automation"
	"smart-fuel-crm/internal/config"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/metrics"
)

func main() {
	cfg := config.LoadConfig()
	if err := app.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatalw("failed to start", "error", err)
	}
	defer a.Close()
	metrics.Register()

	scheduler, err := automation.NewScheduler(a.FollowUps, cfg.FollowUpCron)
	if err != nil {
		logger.Fatalw("failed to schedule follow-up mailer", "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(), api.CORS())

	api.RegisterRoutes(r, api.Handlers{
		Auth:          api.NewAuthHandler(a.Repos.Profiles, a.Issuer),
		Profile:       api.NewProfileHandler(a.Repos.Profiles),
		Clients:       api.NewClientHandler(a.Repos, a.Profiles, a.Notify, cfg.CountryCode),
		POS:           api.NewPOSHandler(a.Repos, a.Profiles, cfg.CountryCode),
		Templates:     api.NewTemplateHandler(a.Repos.Templates, a.Storage),
		Notifications: api.NewNotificationHandler(a.Notify),
		Reports:       api.NewReportHandler(a.Reports),
		Export:        api.NewExportHandler(a.Repos),
		Functions:     api.NewFunctionsHandler(a.Mailer, a.FollowUps),
	}, a.Issuer.Middleware())

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to run server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}
