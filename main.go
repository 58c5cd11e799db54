package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/river20s/task-manager/config"
	"github.com/river20s/task-manager/controllers"
	"github.com/river20s/task-manager/middleware"
	"github.com/river20s/task-manager/routes"
	"github.com/river20s/task-manager/services"
)

func main() {
	logger, err := config.InitLogger()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := config.InitDB(conf)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	redisClient, err := config.InitRedis(conf)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}

	sessionTTL := time.Duration(conf.SessionTTLHours) * time.Hour
	sessions := services.NewRedisSessionStore(redisClient, sessionTTL)
	authService := services.NewAuthService(db, logger)
	taskService := services.NewTaskService(db, logger)

	authController := controllers.NewAuthController(authService, sessions, sessionTTL, logger)
	taskController := controllers.NewTaskController(taskService, logger)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.LoadHTMLGlob("templates/*.html")

	middleware.Setup(r, logger)

	routes.RegisterRoutes(r, authController, taskController, sessions)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Infow("server starting", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Errorw("redis close failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Errorw("database close failed", "error", err)
		}
	}

	logger.Infow("server stopped")
}
