package handlers

import (
	"net/http"
	"strings"

	"github.com/arnavshah/troop-swap-api-go/pkg/generator"
	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/arnavshah/troop-swap-api-go/pkg/sheet"
	"github.com/gin-gonic/gin"
)

// preview runs the generator without touching storage
func (h *Handler) preview(roster []models.PlayerEntry, seed *int64) (*models.GenerateResponse, error) {
	var opts []generator.Option
	switch {
	case seed != nil:
		opts = append(opts, generator.WithSeed(*seed))
	case h.Seed != 0:
		opts = append(opts, generator.WithSeed(h.Seed))
	}

	gen, err := generator.New(h.Generator, opts...)
	if err != nil {
		return nil, err
	}
	orders, err := gen.Generate(roster)
	if err != nil {
		return nil, err
	}
	return &models.GenerateResponse{
		Orders:  orders,
		Summary: h.Generator.Summarize(roster, orders),
	}, nil
}

// GenerateJSON handles the JSON-based preview request
func (h *Handler) GenerateJSON(c *gin.Context) {
	var input models.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roster, err := models.Entries(input.Players)
	if err != nil {
		h.generationError(c, err)
		return
	}

	res, err := h.preview(roster, input.Seed)
	if err != nil {
		h.generationError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GenerateCSV handles roster sheet uploads and returns the orders as CSV
func (h *Handler) GenerateCSV(c *gin.Context) {
	rosterFile, _ := c.FormFile("roster_file")
	if rosterFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster_file is required"})
		return
	}

	f, err := rosterFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open roster file"})
		return
	}
	defer f.Close()

	rows, err := sheet.ReadRoster(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	roster, err := models.Entries(rows)
	if err != nil {
		h.generationError(c, err)
		return
	}

	res, err := h.preview(roster, nil)
	if err != nil {
		h.generationError(c, err)
		return
	}

	var outCSV strings.Builder
	if err := sheet.WriteOrders(&outCSV, res.Orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String(), "summary": res.Summary})
}
