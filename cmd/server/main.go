// Package main is the entry point for the Baartal API server.
package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"baartal/internal/config"
	"baartal/internal/logger"
	"baartal/internal/repositories"
	"baartal/internal/routes"
)

func main() {
	config.LoadEnv()

	log := logger.Init()
	defer logger.Sync()

	if err := repositories.InitDB(); err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer closeConnections(log)

	app := fiber.New(fiber.Config{
		AppName: "Baartal API",
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, repositories.DB)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info("server listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func closeConnections(log *zap.Logger) {
	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("closing database", zap.Error(err))
			}
		}
	}
	if repositories.Cache != nil {
		if err := repositories.Cache.Close(); err != nil {
			log.Warn("closing cache", zap.Error(err))
		}
	}
}
