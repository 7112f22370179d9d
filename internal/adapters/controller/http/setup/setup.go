package setup

import (
	"context"

	"github.com/spf13/viper"

	"github.com/nedconnect/backend/cmd/app"
	"github.com/nedconnect/backend/internal/adapters/controller/http/handlers"
	"github.com/nedconnect/backend/internal/adapters/controller/http/middlewares"
	"github.com/nedconnect/backend/internal/adapters/database/postgres"
	"github.com/nedconnect/backend/internal/domain/entity"
	"github.com/nedconnect/backend/internal/domain/service"
	"github.com/nedconnect/backend/pkg/logger"
)

// Setup wires storages, services and handlers onto the HTTP app, seeds the
// admin account and launches the reminder scheduler.
func Setup(a *app.App) {
	accountStorage := postgres.NewAccountStorage(a.DB)
	societyStorage := postgres.NewSocietyStorage(a.DB)
	eventStorage := postgres.NewEventStorage(a.DB)
	registrationStorage := postgres.NewRegistrationStorage(a.DB)

	registrationLogger, err := logger.Named("registration")
	if err != nil {
		logger.Log.Panicf("Failed to create registration logger: %v", err)
	}
	reminderLogger, err := logger.Named("reminder")
	if err != nil {
		logger.Log.Panicf("Failed to create reminder logger: %v", err)
	}

	authService := service.NewAuthService(accountStorage, a.Redis.Sessions, viper.GetDuration("settings.session-ttl"))
	accountService := service.NewAccountService(accountStorage, societyStorage)
	societyService := service.NewSocietyService(societyStorage)
	eventService := service.NewEventService(eventStorage, a.Posters)
	registrationService := service.NewRegistrationService(
		registrationLogger,
		registrationStorage,
		eventStorage,
		accountStorage,
		a.SMTP,
	)

	// The admin account is seeded from config. There is no admin signup
	// and no built-in credential.
	err = accountService.EnsureAdmin(
		context.Background(),
		viper.GetString("service.admin.fullname"),
		viper.GetString("service.admin.email"),
		viper.GetString("service.admin.username"),
		viper.GetString("service.admin.password"),
	)
	if err != nil {
		logger.Log.Panicf("Failed to seed admin account: %v", err)
	}

	mw := middlewares.New(a.Logger, authService)
	authHandler := handlers.NewAuthHandler(a.Logger, accountService, authService)
	adminHandler := handlers.NewAdminHandler(a.Logger, accountService, societyService, eventService, registrationService)
	societyHandler := handlers.NewSocietyHandler(a.Logger, eventService, registrationService)
	studentHandler := handlers.NewStudentHandler(a.Logger, eventService, registrationService)

	api := a.Fiber.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", mw.Authenticated, authHandler.Logout)

	api.Get("/me", mw.Authenticated, authHandler.Me)
	api.Get("/me/registrations", mw.Authenticated, mw.RequireRole(entity.RoleStudent), studentHandler.MySchedule)

	events := api.Group("/events", mw.Authenticated)
	events.Get("/", studentHandler.Feed)
	events.Post("/:id/registrations", mw.RequireRole(entity.RoleStudent), studentHandler.Register)
	events.Delete("/:id/registrations", mw.RequireRole(entity.RoleStudent), studentHandler.Cancel)
	events.Get("/:id/registrations/me", mw.RequireRole(entity.RoleStudent), studentHandler.RegistrationStatus)

	society := api.Group("/society", mw.Authenticated, mw.RequireRole(entity.RoleSociety))
	society.Post("/events", societyHandler.ProposeEvent)
	society.Get("/events", societyHandler.MyEvents)
	society.Get("/events/:id/attendees", societyHandler.EventAttendees)
	society.Get("/events/:id/attendees/export", societyHandler.ExportEventAttendees)

	admin := api.Group("/admin", mw.Authenticated, mw.RequireRole(entity.RoleAdmin))
	admin.Get("/accounts/unlinked", adminHandler.ListUnlinkedAccounts)
	admin.Post("/accounts/:id/link", adminHandler.LinkAccount)
	admin.Post("/societies", adminHandler.CreateSociety)
	admin.Get("/societies", adminHandler.ListSocieties)
	admin.Get("/events/pending", adminHandler.ListPendingEvents)
	admin.Post("/events/:id/decision", adminHandler.DecideEvent)
	admin.Get("/events/:id/attendees/export", adminHandler.ExportEventAttendees)

	reminder := service.NewReminderService(
		reminderLogger,
		eventStorage,
		registrationStorage,
		a.SMTP,
		viper.GetInt("settings.reminder-hour"),
	)
	reminder.Start()
}
