package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/arnavshah/troop-swap-api-go/pkg/publisher"
	"github.com/arnavshah/troop-swap-api-go/pkg/sheet"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// publishedOrders loads the published orders sorted by sender
func (h *Handler) publishedOrders(ctx context.Context) ([]models.Assignment, error) {
	orders, err := h.Orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].From < orders[j].From
	})
	return orders, nil
}

// GetOrders returns the published orders sorted by sender
func (h *Handler) GetOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.publishedOrders(ctx)
	if err != nil {
		h.Logger.Error("Orders read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusOK, gin.H{"orders": orders, "message": "Orders not yet generated."})
		return
	}

	run, err := h.Orders.LatestRun(ctx)
	if err != nil {
		h.Logger.Error("Run read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "run": run})
}

// GetOrdersCSV returns the published orders as a CSV download, sorted by sender
func (h *Handler) GetOrdersCSV(c *gin.Context) {
	orders, err := h.publishedOrders(c.Request.Context())
	if err != nil {
		h.Logger.Error("Orders read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}

	var buf bytes.Buffer
	if err := sheet.WriteOrders(&buf, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode orders"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="swap_orders.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Publish generates orders from the stored roster and replaces the published set
func (h *Handler) Publish(c *gin.Context) {
	res, err := h.Publisher.Publish(c.Request.Context())
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Reset wipes the roster and the published orders
func (h *Handler) Reset(c *gin.Context) {
	err := h.Publisher.Reset(c.Request.Context(), h.Roster)
	if errors.Is(err, publisher.ErrPublishInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.Logger.Error("Reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not reset data"})
		return
	}
	h.Logger.Info("Reset completed", zap.String("by", c.GetString("username")))
	c.JSON(http.StatusOK, gin.H{"message": "Wiped everything."})
}
