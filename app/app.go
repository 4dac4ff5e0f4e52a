// File: app/app.go
package app

import (
	"context"
	"go-vidtube-api/config"
	"go-vidtube-api/db"
	"go-vidtube-api/handler"
	"go-vidtube-api/logger"
	"go-vidtube-api/repository"
	"go-vidtube-api/router"
	"go-vidtube-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	client, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Log.WithError(err).Error("Error disconnecting from the database")
		}
	}()

	database := client.Database(config.AppConfig.Database.Name)
	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		logger.Log.Fatalf("Error creating indexes: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := service.NewUploadService(config.AppConfig)
	if err != nil {
		logger.Log.Fatalf("Error creating upload service: %v", err)
	}

	// The signing secrets are read once here and injected; nothing below
	// this point reaches back into the global configuration for them.
	codec := service.NewTokenCodec(config.AppConfig.JWT.AccessSecret, config.AppConfig.JWT.RefreshSecret)

	// --- Wiring All Layers Together ---

	userRepo := repository.NewUserRepository(database)
	userService := service.NewUserService(userRepo)
	sessionService := service.NewSessionService(userRepo, codec)
	userHandler := handler.NewUserHandler(userService, sessionService, uploader, config.AppConfig.Server.SecureCookies)

	videoRepo := repository.NewVideoRepository(database)
	videoService := service.NewVideoService(videoRepo, redisClient)
	videoHandler := handler.NewVideoHandler(videoService, uploader)

	commentHandler := handler.NewCommentHandler(repository.NewCommentRepository(database))
	likeHandler := handler.NewLikeHandler(repository.NewLikeRepository(database))
	playlistHandler := handler.NewPlaylistHandler(repository.NewPlaylistRepository(database))
	subscriptionHandler := handler.NewSubscriptionHandler(repository.NewSubscriptionRepository(database))

	authMW := handler.AuthMiddleware(sessionService)

	r := router.NewRouter(userHandler, videoHandler, commentHandler, likeHandler, playlistHandler, subscriptionHandler, authMW)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
