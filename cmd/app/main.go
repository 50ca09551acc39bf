package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/sharepool/backend/internal/api/http"
	"github.com/sharepool/backend/internal/config"
	"github.com/sharepool/backend/internal/db"
	"github.com/sharepool/backend/internal/repository"
	"github.com/sharepool/backend/internal/server"
	"github.com/sharepool/backend/internal/service"
	"github.com/sharepool/backend/pkg/email/smtp"
	"github.com/sharepool/backend/pkg/logger"
	"github.com/sharepool/backend/pkg/otp"
	"github.com/sharepool/backend/pkg/sms"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)

	appLogger.Info("starting otp backend", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		err = dbMySQL.Close()
		if err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	smsSender := sms.NewClient(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.From, cfg.SMS.Timeout)

	otpGenerator := otp.NewRandomGenerator()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		OtpGenerator: otpGenerator,
		EmailSender:  emailSender,
		SMSSender:    smsSender,
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
