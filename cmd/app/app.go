package app

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/nedconnect/backend/internal/adapters/config"
	"github.com/nedconnect/backend/internal/adapters/controller/http/handlers"
	"github.com/nedconnect/backend/internal/adapters/database/redis"
	"github.com/nedconnect/backend/internal/adapters/storage"
	"github.com/nedconnect/backend/pkg/logger"
	"github.com/nedconnect/backend/pkg/logger/types"
	"github.com/nedconnect/backend/pkg/smtp"
)

type App struct {
	Fiber   *fiber.App
	DB      *gorm.DB
	Redis   *redis.Client
	SMTP    *smtp.Client
	Posters *storage.PosterStorage
	Logger  *types.Logger
}

func New(cfg *config.Config) (*App, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}
	mailLogger, err := logger.Named("mail")
	if err != nil {
		return nil, err
	}

	smtpClient := smtp.NewClient(
		mailLogger,
		cfg.SMTPDialer,
		viper.GetString("service.smtp.email"),
		viper.GetString("service.smtp.domain"),
	)

	f := fiber.New(fiber.Config{
		AppName:      "nedconnect-backend",
		BodyLimit:    8 << 20,
		ErrorHandler: handlers.ErrorHandler(httpLogger),
	})

	return &App{
		Fiber:   f,
		DB:      cfg.Database,
		Redis:   cfg.Redis,
		SMTP:    smtpClient,
		Posters: cfg.Posters,
		Logger:  httpLogger,
	}, nil
}

func (a *App) Start() {
	addr := fmt.Sprintf(":%d", viper.GetInt("service.http.port"))
	logger.Log.Infof("HTTP server listening on %s", addr)
	if err := a.Fiber.Listen(addr); err != nil {
		logger.Log.Panicf("HTTP server stopped: %v", err)
	}
}
