package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetRuns returns the recent publish history with totals
func (h *Handler) GetRuns(c *gin.Context) {
	runs, err := h.Orders.Runs(c.Request.Context(), 30)
	if err != nil {
		h.Logger.Error("Run history read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch run history"})
		return
	}

	var totalSends, totalUnmatched int64
	for _, r := range runs {
		totalSends += int64(r.Sends)
		totalUnmatched += int64(r.Unmatched)
	}

	c.JSON(http.StatusOK, gin.H{
		"runs": runs,
		"totals": gin.H{
			"runs":      len(runs),
			"sends":     totalSends,
			"unmatched": totalUnmatched,
		},
	})
}
