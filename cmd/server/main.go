package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/yoonsu-park/community-board/internal/config"
	"github.com/yoonsu-park/community-board/internal/database"
	"github.com/yoonsu-park/community-board/internal/events"
	"github.com/yoonsu-park/community-board/internal/handlers"
	"github.com/yoonsu-park/community-board/internal/realtime"
	"github.com/yoonsu-park/community-board/internal/repository"
	"github.com/yoonsu-park/community-board/internal/scheduler"
	"github.com/yoonsu-park/community-board/internal/services"
	jwtutil "github.com/yoonsu-park/community-board/pkg/jwt"
	"github.com/yoonsu-park/community-board/pkg/logger"
	"github.com/yoonsu-park/community-board/pkg/middleware"
)

func main() {
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// --- Shared state ---
	registry := jwtutil.NewRevocationRegistry()
	hub := realtime.NewHub()

	// --- Services ---
	userService := services.NewUserService(userRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	dedup := services.NewDedupWindow(historyRepo, cfg.DedupWindow)
	notifService := services.NewNotificationService(notifRepo, settingsService, dedup, hub)
	retentionService := services.NewRetentionService(historyRepo, cfg.HistoryRetention)
	dispatcher := events.NewDispatcher(notifService)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, registry, cfg)
	notifHandler := handlers.NewNotificationHandler(notifService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	announcementHandler := handlers.NewAnnouncementHandler(dispatcher)
	wsHandler := handlers.NewWSHandler(hub, registry, cfg.JWTSecret)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.AuthMiddleware(cfg.JWTSecret, registry))

	// Auth routes
	router.HandleFunc("/users/register", authHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", authHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/logout", authHandler.LogoutUserHandler).Methods("POST")

	// Live push connection; the handler authenticates the handshake itself.
	router.HandleFunc("/ws/notifications", wsHandler.ConnectHandler)

	// Notification routes
	notifRoutes := router.PathPrefix("/notifications").Subrouter()
	notifRoutes.Use(middleware.RequireAuth)
	notifRoutes.HandleFunc("", notifHandler.GetNotificationsHandler).Methods("GET")
	notifRoutes.HandleFunc("/read", notifHandler.MarkAllReadHandler).Methods("PATCH")

	// Settings routes
	settingsRoutes := router.PathPrefix("/api/notifications/settings").Subrouter()
	settingsRoutes.Use(middleware.RequireAuth)
	settingsRoutes.HandleFunc("", settingsHandler.GetSettingsHandler).Methods("GET")
	settingsRoutes.HandleFunc("", settingsHandler.UpdateSettingsHandler).Methods("PUT")
	settingsRoutes.HandleFunc("/reset", settingsHandler.ResetSettingsHandler).Methods("POST")
	settingsRoutes.HandleFunc("/{type}", settingsHandler.ToggleSettingHandler).Methods("PUT")

	// Admin routes
	adminRoutes := router.PathPrefix("/api/admin").Subrouter()
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/announcements", announcementHandler.CreateAnnouncementHandler).Methods("POST")

	// Periodic maintenance
	sched := scheduler.NewCronScheduler()
	if err := sched.Every(time.Hour, "history-retention-sweep", retentionService.Sweep); err != nil {
		log.Fatalf("Scheduler error: %v", err)
	}
	if err := sched.Every(time.Hour, "revocation-prune", func(ctx context.Context) error {
		registry.Prune(time.Now())
		return nil
	}); err != nil {
		log.Fatalf("Scheduler error: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
