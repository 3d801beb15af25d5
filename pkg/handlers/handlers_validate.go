package handlers

import (
	"net/http"

	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a JSON roster without generating orders
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	roster, err := models.Entries(input.Players)
	if err == nil {
		err = generator.Validate(roster)
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if len(roster) < 2 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": models.ErrInsufficientPlayers.Error()})
		return
	}

	totalSends := 0
	groups := make(map[models.Group]int)
	for _, p := range roster {
		totalSends += p.SendCount
		groups[p.Group]++
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"player_count":  len(roster),
			"total_sends":   totalSends,
			"online_count":  groups[models.GroupOnline],
			"offline_count": groups[models.GroupOffline],
		},
	})
}
