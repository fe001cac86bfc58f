package routes

import (
	"fmt"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/KaladaranC/TutorTrack/internal/config"
	"github.com/KaladaranC/TutorTrack/internal/database"
	"github.com/KaladaranC/TutorTrack/internal/handlers"
	"github.com/KaladaranC/TutorTrack/internal/middleware"
	"github.com/KaladaranC/TutorTrack/internal/services"
	"github.com/KaladaranC/TutorTrack/internal/storage"
	sessionws "github.com/KaladaranC/TutorTrack/internal/websocket"
	"github.com/KaladaranC/TutorTrack/pkg/utils"
)

// RegisterRoutes wires the full API surface. The returned cleanup releases
// the storage backend and must run on shutdown.
func RegisterRoutes(app *fiber.App, cfg *config.Config) (func(), error) {
	store, cleanup, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	location := time.Local
	if cfg.Timezone != "" {
		location, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
		}
	}

	passwordHash, err := utils.HashPassword(cfg.AuthPassword)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("hash auth password: %w", err)
	}

	hub := sessionws.NewHub()
	go hub.Run()

	sessionService := services.NewSessionService(store, hub)

	var parser services.ScheduleParser
	if cfg.GeminiAPIKey != "" {
		parser = services.NewGeminiParser(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthEmail, passwordHash, cfg.JWTSecret)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	dashboardHandler := handlers.NewDashboardHandler(sessionService)
	calendarHandler := handlers.NewCalendarHandler(sessionService, location)
	parseHandler := handlers.NewParseHandler(parser)
	feedHandler := handlers.NewFeedHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	sessions := protected.Group("/sessions")
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Post("", sessionHandler.CreateSession)
	sessions.Post("/parse", parseHandler.ParseSchedule)
	sessions.Put("/:id", sessionHandler.UpdateSession)
	sessions.Put("/:id/status", sessionHandler.ChangeStatus)
	sessions.Delete("/:id", sessionHandler.DeleteSession)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/status-distribution", dashboardHandler.GetStatusDistribution)
	dashboard.Get("/top-students", dashboardHandler.GetTopStudents)

	protected.Get("/calendar/:year/:month", calendarHandler.GetMonth)

	api.Use("/v1/ws", feedHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(feedHandler.HandleWebSocket))

	return cleanup, nil
}

// buildStore opens the configured backend and returns it with a cleanup
// that releases it again: the bolt file lock, the pgx pool. Sheets holds
// no local resource.
func buildStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		if cfg.DBUrl == "" {
			return nil, nil, fmt.Errorf("DB_URL is required for the postgres backend")
		}
		if err := database.ConnectDB(cfg.DBUrl); err != nil {
			return nil, nil, err
		}
		return storage.NewPostgresStore(database.DB), database.CloseDB, nil
	case config.BackendSheets:
		if cfg.SheetsURL == "" {
			return nil, nil, fmt.Errorf("SHEETS_URL is required for the sheets backend")
		}
		return storage.NewSheetsStore(cfg.SheetsURL), func() {}, nil
	default:
		store, err := storage.NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if closeErr := store.Close(); closeErr != nil {
				log.Printf("close session store: %v", closeErr)
			}
		}, nil
	}
}
