package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openclass/courseware-backend/internal/config"
	"github.com/openclass/courseware-backend/internal/database"
	"github.com/openclass/courseware-backend/internal/handler"
	"github.com/openclass/courseware-backend/internal/logger"
	"github.com/openclass/courseware-backend/internal/repository"
	"github.com/openclass/courseware-backend/internal/router"
	"github.com/openclass/courseware-backend/internal/service"
	"github.com/openclass/courseware-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Courseware Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(cfg, userRepo)
	groupService := service.NewGroupService(groupRepo, log)
	courseService := service.NewCourseService(courseRepo, userRepo)
	contentService := service.NewContentService(contentRepo, courseRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)

	// ─── Seed Well-Known Groups ───────────────────────────────────────
	// Create-if-absent, so repeated startups never duplicate a group.
	if err := groupService.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed groups")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		User:       handler.NewUserHandler(userService, authService),
		Group:      handler.NewGroupHandler(groupService),
		Course:     handler.NewCourseHandler(courseService),
		Content:    handler.NewContentHandler(contentService),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, userRepo, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
