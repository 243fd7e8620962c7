package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bhatter1986/Options-analysis/services"
)

// InstrumentController handles instrument catalog HTTP requests
type InstrumentController struct {
	instrumentService *services.InstrumentService
}

// NewInstrumentController creates a new instrument controller
func NewInstrumentController(instrumentService *services.InstrumentService) *InstrumentController {
	return &InstrumentController{
		instrumentService: instrumentService,
	}
}

// HandleListInstruments returns the catalog
// GET /api/v1/instruments?limit=100
func (ic *InstrumentController) HandleListInstruments(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		limit = 100
	}

	instruments, err := ic.instrumentService.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list instruments",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(instruments),
		"instruments": instruments,
	})
}

// HandleSearchInstruments searches the catalog
// GET /api/v1/instruments/search?q=NIFTY&limit=20
func (ic *InstrumentController) HandleSearchInstruments(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}

	instruments, err := ic.instrumentService.Search(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to search instruments",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"count":       len(instruments),
		"instruments": instruments,
	})
}

// HandleRefreshInstruments re-downloads the scrip master
// POST /api/v1/instruments/refresh
func (ic *InstrumentController) HandleRefreshInstruments(c *gin.Context) {
	// The scrip master dump is large; give the download room to finish.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	count, err := ic.instrumentService.Refresh(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to refresh instruments",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  count,
	})
}
