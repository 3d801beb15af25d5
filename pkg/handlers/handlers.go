package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arnavshah/troop-swap-api-go/pkg/auth"
	"github.com/arnavshah/troop-swap-api-go/pkg/database"
	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/arnavshah/troop-swap-api-go/pkg/publisher"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB        *gorm.DB
	Keys      auth.Keys
	Roster    *database.RosterStore
	Orders    *database.OrderStore
	Publisher *publisher.Publisher
	Generator generator.Config
	// Seed pins preview shuffles when non-zero
	Seed       int64
	MinMarches int
	MaxMarches int
	Logger     *zap.Logger
}

// Options configures a Handler built by New
type Options struct {
	Keys       auth.Keys
	Generator  generator.Config
	Seed       int64
	MinMarches int
	MaxMarches int
	Logger     *zap.Logger
}

// New wires the stores and the publisher on top of db
func New(db *gorm.DB, opts Options) (*Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	roster := &database.RosterStore{DB: db}
	orders := &database.OrderStore{DB: db}

	pubOpts := []publisher.Option{publisher.WithLogger(logger)}
	if opts.Seed != 0 {
		pubOpts = append(pubOpts, publisher.WithSeed(opts.Seed))
	}
	pub, err := publisher.New(roster, orders, opts.Generator, pubOpts...)
	if err != nil {
		return nil, err
	}

	return &Handler{
		DB:         db,
		Keys:       opts.Keys,
		Roster:     roster,
		Orders:     orders,
		Publisher:  pub,
		Generator:  opts.Generator,
		Seed:       opts.Seed,
		MinMarches: opts.MinMarches,
		MaxMarches: opts.MaxMarches,
		Logger:     logger,
	}, nil
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Keys.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the alliance key for member routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Alliance key required"})
			return
		}

		alliance, err := h.Keys.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid alliance key signature"})
			return
		}

		c.Set("alliance", alliance)
		c.Next()
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Keys.Login(h.DB, req.Username, req.Password)
	if errors.Is(err, auth.ErrMissingSecret) {
		h.Logger.Error("Admin login attempted without JWT_SECRET")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// generationError maps roster and publish failures to HTTP responses
func (h *Handler) generationError(c *gin.Context, err error) {
	var entryErr *models.InvalidEntryError
	switch {
	case errors.Is(err, models.ErrInsufficientPlayers):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Need more players!"})
	case errors.As(err, &entryErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": entryErr.Error(), "row": entryErr.Row + 1})
	case errors.Is(err, publisher.ErrPublishInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("Generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate orders"})
	}
}
