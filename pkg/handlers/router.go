package handlers

import (
	"net/http"

	"github.com/arnavshah/troop-swap-api-go/pkg/logging"
	"github.com/gin-gonic/gin"
)

// Version is reported by the index route
const Version = "1.0.0"

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(h.Logger), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Troop Swap API",
			"version": Version,
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/publish", h.Publish)
		admin.POST("/reset", h.Reset)
		admin.GET("/runs", h.GetRuns)
	}

	// Member Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/roster", h.GetRoster)
		api.PUT("/roster", h.UpsertEntry)
		api.DELETE("/roster/:username", h.RemoveEntry)
		api.GET("/orders", h.GetOrders)
		api.GET("/orders/csv", h.GetOrdersCSV)
		api.POST("/generate", h.GenerateJSON)
		api.POST("/generate/csv", h.GenerateCSV)
		api.POST("/validate", h.ValidateInput)
	}

	return r
}
