package handler

import (
	"net/http"

	"github.com/arnavshah/troop-swap-api-go/pkg/auth"
	"github.com/arnavshah/troop-swap-api-go/pkg/config"
	"github.com/arnavshah/troop-swap-api-go/pkg/database"
	"github.com/arnavshah/troop-swap-api-go/pkg/handlers"
	"github.com/arnavshah/troop-swap-api-go/pkg/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	r       *gin.Engine
	initErr error
)

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()
	gin.SetMode(gin.ReleaseMode)

	r, initErr = build()
}

func build() (*gin.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDB(database.Options{DatabaseURL: cfg.DatabaseURL, DataPath: cfg.DataPath})
	if err != nil {
		return nil, err
	}
	if _, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Warn("Could not seed admin user", zap.Error(err))
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
		return nil, err
	}
	return handlers.NewRouter(h), nil
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	if initErr != nil {
		http.Error(w, "service unavailable: "+initErr.Error(), http.StatusServiceUnavailable)
		return
	}
	r.ServeHTTP(w, req)
}
