package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"spill/config"
	"spill/middleware"
	"spill/models"
	"spill/routes"
	"spill/services"
	"spill/socket"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	store, photos, media := initStorage(ctx, cfg, logger)

	authService := services.NewTelegramAuthService(cfg.TelegramBotToken, cfg.InitDataMaxAge, logger)
	hub := socket.NewHub(authService, logger)
	go func() {
		if err := hub.Serve(); err != nil {
			logger.Error("socket server stopped", zap.Error(err))
		}
	}()
	defer hub.Close()

	userProfileService := services.NewUserProfileService(store, photos, hub, logger)
	limiter := services.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := mux.NewRouter()
	r.Use(middleware.Recover(logger))
	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, userProfileService, authService, limiter, cfg.MaxAttachmentBytes, logger)
	if media != nil {
		routes.RegisterMediaRoutes(r, media)
	}
	r.PathPrefix("/socket.io/").Handler(hub.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", models.InitDataHeader},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port),
			zap.String("user_store", cfg.UserStore),
			zap.String("photo_store", cfg.PhotoStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// initStorage picks the user and photo stores from config. media is non-nil
// only when photos live in memory and this server must serve them.
func initStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.UserStore, services.PhotoStorage, *services.MemoryPhotoStorage) {
	var (
		store  services.UserStore
		photos services.PhotoStorage
		media  *services.MemoryPhotoStorage
	)

	needAWS := cfg.UserStore == "dynamodb" || cfg.PhotoStore == "s3"
	var awsService *services.DynamoService
	if needAWS {
		awsCfg, err := services.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			logger.Fatal("failed to initialize AWS", zap.Error(err))
		}
		if cfg.UserStore == "dynamodb" {
			awsService = services.NewDynamoService(awsCfg, logger)
		}
		if cfg.PhotoStore == "s3" {
			if cfg.S3Bucket == "" {
				logger.Fatal("S3_BUCKET_NAME is required when PHOTO_STORE=s3")
			}
			photos = services.NewS3PhotoStorage(awsCfg, cfg.S3Bucket, cfg.PublicMediaURL, logger)
		}
	}

	if awsService != nil {
		store = &services.DynamoUserStore{Dynamo: awsService, Table: cfg.UsersTable}
	} else {
		store = services.NewMemoryUserStore()
	}

	if photos == nil {
		base := cfg.PublicMediaURL
		if base == "" {
			base = cfg.APIBaseURL
		}
		media = services.NewMemoryPhotoStorage(base)
		photos = media
	}
	return store, photos, media
}
