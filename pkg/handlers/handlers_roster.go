package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/arnavshah/troop-swap-api-go/pkg/database"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetRoster lists registered players, strongest first
func (h *Handler) GetRoster(c *gin.Context) {
	roster, err := h.Roster.Roster(c.Request.Context())
	if err != nil {
		h.Logger.Error("Roster read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch roster"})
		return
	}

	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Strength > roster[j].Strength
	})
	c.JSON(http.StatusOK, gin.H{"count": len(roster), "players": roster})
}

// UpsertEntry adds or updates a player's roster entry
func (h *Handler) UpsertEntry(c *gin.Context) {
	var row models.RosterRow
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := row.Entry(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if entry.SendCount < h.MinMarches || entry.SendCount > h.MaxMarches {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("send_count must be between %d and %d", h.MinMarches, h.MaxMarches),
		})
		return
	}
	if row.Strength != nil && *row.Strength < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "strength must not be negative"})
		return
	}

	if err := h.Roster.Upsert(c.Request.Context(), entry); err != nil {
		h.Logger.Error("Roster upsert failed", zap.String("username", entry.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save entry"})
		return
	}

	h.Logger.Info("Roster entry saved",
		zap.String("username", entry.Username),
		zap.String("group", string(entry.Group)),
		zap.Int("send_count", entry.SendCount))
	c.JSON(http.StatusOK, gin.H{"message": "Saved " + entry.Username + "!", "player": entry})
}

// RemoveEntry deletes a player's roster entry
func (h *Handler) RemoveEntry(c *gin.Context) {
	username := c.Param("username")
	err := h.Roster.Remove(c.Request.Context(), username)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No entry for " + username})
		return
	}
	if err != nil {
		h.Logger.Error("Roster removal failed", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not remove entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed."})
}
