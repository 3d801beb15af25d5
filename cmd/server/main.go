package main

import (
	"log"

	"github.com/arnavshah/troop-swap-api-go/pkg/auth"
	"github.com/arnavshah/troop-swap-api-go/pkg/config"
	"github.com/arnavshah/troop-swap-api-go/pkg/database"
	"github.com/arnavshah/troop-swap-api-go/pkg/handlers"
	"github.com/arnavshah/troop-swap-api-go/pkg/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(database.Options{DatabaseURL: cfg.DatabaseURL, DataPath: cfg.DataPath})
	if err != nil {
		logger.Fatal("Database unavailable", zap.Error(err))
	}
	created, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("Could not seed admin user", zap.Error(err))
	}
	if created {
		logger.Info("Default admin user created", zap.String("username", cfg.AdminUsername))
	}

	h, err := handlers.New(db, handlers.Options{
		Keys:       auth.Keys{JWTSecret: []byte(cfg.JWTSecret), MasterSecret: []byte(cfg.MasterSecret)},
		Generator:  cfg.Generator,
		Seed:       cfg.Seed,
		MinMarches: cfg.MinMarches,
		MaxMarches: cfg.MaxMarches,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Could not build handlers", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is not set, admin routes will reject every token")
	}
	if cfg.MasterSecret == "" {
		logger.Warn("API_MASTER_SECRET is not set, member routes will reject every key")
	}

	r := handlers.NewRouter(h)

	logger.Info("Server starting", zap.String("addr", cfg.ListenAddr()))
	if err := r.Run(cfg.ListenAddr()); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
