// Package app wires configuration into the CRM's stores and services.
package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/automation"
	"smart-fuel-crm/internal/cache"
	"smart-fuel-crm/internal/config"
	"smart-fuel-crm/internal/database"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/mail"
	"smart-fuel-crm/internal/notify"
	"smart-fuel-crm/internal/profile"
	"smart-fuel-crm/internal/report"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/storage"
)

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Repos     *repository.Repositories
	Issuer    *auth.Issuer
	Profiles  *profile.Service
	Notify    *notify.Service
	Reports   *report.Service
	Storage   storage.Provider
	Mailer    *mail.Resend
	FollowUps *automation.FollowUpMailer

	closers []func() error
}

// InitLogger configures the global logger from cfg.
func InitLogger(cfg *config.Config) error {
	return logger.Init(logger.Conf{
		Output: cfg.LogOutput,
		Path:   cfg.LogPath,
		Level:  cfg.LogLevel,
	})
}

// New opens the database and builds every service. Redis is used for the
// notification cache when REDIS_ADDR is set, process memory otherwise.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, DB: db, Repos: repository.New(db)}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	var c cache.ICache = cache.NewMemory(cfg.CacheMaxBytes)
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		a.closers = append(a.closers, rdb.Close)
		c = rdb
		logger.Infow("notification cache backed by redis", "addr", cfg.RedisAddr)
	}

	provider, err := storage.New(cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}
	if provider == nil {
		logger.Warnw("attachment storage disabled; set STORAGE_PROVIDER to minio or s3")
	}

	a.Storage = provider
	a.Issuer = auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	a.Profiles = profile.NewService(a.Repos.Profiles)
	a.Notify = notify.NewService(a.Repos.FollowUps, c, cfg.NotificationTTL)
	a.Reports = report.NewService(a.Repos)
	a.Mailer = mail.NewResend(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.MailFrom)
	a.FollowUps = automation.NewFollowUpMailer(a.Repos, a.Mailer, a.Profiles, a.Notify)
	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warnw("close failed", "error", err)
		}
	}
	a.closers = nil
}
