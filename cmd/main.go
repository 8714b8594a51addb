package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/judging-system/config"
	"github.com/Dosada05/judging-system/db"
	"github.com/Dosada05/judging-system/handlers"
	"github.com/Dosada05/judging-system/live"
	"github.com/Dosada05/judging-system/metrics"
	"github.com/Dosada05/judging-system/repositories"
	api "github.com/Dosada05/judging-system/routes"
	"github.com/Dosada05/judging-system/services"
	"github.com/Dosada05/judging-system/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("driver", cfg.DatabaseDriver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.CreateSchema(ctx, dbConn, cfg.DatabaseDriver); err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize object storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("object storage initialized", slog.String("bucket", cfg.S3BucketName))
	} else {
		logger.Warn("object storage not configured; banner uploads are disabled")
	}

	metricsManager := metrics.NewManager()

	wsHub := live.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	judgeRepo := repositories.NewJudgeRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	competitorRepo := repositories.NewCompetitorRepository(dbConn)
	questionRepo := repositories.NewQuestionRepository(dbConn)
	answerRepo := repositories.NewAnswerRepository(dbConn)
	compositeRepo := repositories.NewCompositeScoreRepository(dbConn)
	settingRepo := repositories.NewSettingRepository(dbConn)
	assetRepo := repositories.NewAssetRepository(dbConn)
	logger.Info("Repositories initialized")

	leaderboardService := services.NewLeaderboardService(competitorRepo, compositeRepo, wsHub, metricsManager, logger)
	authService := services.NewAuthService(userRepo)
	judgeService := services.NewJudgeService(dbConn, judgeRepo, userRepo, answerRepo, compositeRepo, leaderboardService)
	competitorService := services.NewCompetitorService(dbConn, competitorRepo, answerRepo, compositeRepo, leaderboardService)
	questionService := services.NewQuestionService(dbConn, questionRepo, answerRepo, compositeRepo, metricsManager, leaderboardService)
	scoringService := services.NewScoringService(
		dbConn,
		judgeRepo,
		competitorRepo,
		questionRepo,
		answerRepo,
		compositeRepo,
		metricsManager,
		leaderboardService,
	)
	settingsService := services.NewSettingsService(settingRepo)
	bannerService := services.NewBannerService(assetRepo, uploader, cfg.BannerMaxBytes, logger)
	logger.Info("Services initialized")

	created, err := authService.EnsureDefaultAdmin(ctx, cfg.DefaultAdminPassword)
	if err != nil {
		logger.Error("failed to create default admin", slog.Any("error", err))
		os.Exit(1)
	}
	if created {
		logger.Warn("default admin account created; change its password", slog.String("username", services.DefaultAdminUsername))
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Judges:      handlers.NewJudgeHandler(judgeService),
		Competitors: handlers.NewCompetitorHandler(competitorService),
		Questions:   handlers.NewQuestionHandler(questionService),
		Scoring:     handlers.NewScoringHandler(scoringService, competitorService, questionService, settingsService, bannerService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Settings:    handlers.NewSettingsHandler(settingsService),
		Banner:      handlers.NewBannerHandler(bannerService, cfg.BannerMaxBytes),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins),
		Metrics:     metricsManager.Handler(),
	}, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
