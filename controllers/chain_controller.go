package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bhatter1986/Options-analysis/config"
	"github.com/Bhatter1986/Options-analysis/interfaces"
	"github.com/Bhatter1986/Options-analysis/services"
)

// ChainController handles option chain HTTP requests
type ChainController struct {
	chainService *services.ChainService
	watchlist    *config.Watchlist
}

// NewChainController creates a new chain controller
func NewChainController(chainService *services.ChainService, watchlist *config.Watchlist) *ChainController {
	return &ChainController{
		chainService: chainService,
		watchlist:    watchlist,
	}
}

// HandleGetOptionChain fetches, windows and formats one expiry's chain.
// GET /api/v1/optionchain?instrument_id=13&exchange_segment=IDX_I&expiry=2026-09-03&window_size=5&show_full=false
//
// window_size is the half-width: the number of strikes kept on each side
// of the ATM strike.
func (cc *ChainController) HandleGetOptionChain(c *gin.Context) {
	instrumentID, err := strconv.Atoi(c.Query("instrument_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'instrument_id' must be an integer",
		})
		return
	}

	expiry := c.Query("expiry")
	if expiry == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'expiry' is required",
		})
		return
	}

	segment := c.DefaultQuery("exchange_segment", "IDX_I")

	windowSize, err := strconv.Atoi(c.DefaultQuery("window_size", "0"))
	if err != nil || windowSize < 1 {
		windowSize = cc.watchlist.DefaultWindowSize
	}

	step, err := strconv.ParseFloat(c.DefaultQuery("step", "0"), 64)
	if err != nil {
		step = 0
	}
	if step <= 0 {
		// Fall back to the watchlist preset; the service infers the
		// spacing from the chain itself when neither is set.
		for _, entry := range cc.watchlist.Underlyings {
			if entry.SecurityID == instrumentID {
				step = entry.StrikeStep
				break
			}
		}
	}

	cfg := interfaces.WindowConfig{
		Step:      step,
		HalfWidth: windowSize,
		ShowFull:  c.DefaultQuery("show_full", "false") == "true",
	}

	view, err := cc.chainService.Refresh(c.Request.Context(), instrumentID, segment, expiry, cfg)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch option chain",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// HandleGetExpiries fetches available expiry dates for an underlying.
// GET /api/v1/optionchain/expiries?instrument_id=13&exchange_segment=IDX_I
func (cc *ChainController) HandleGetExpiries(c *gin.Context) {
	instrumentID, err := strconv.Atoi(c.Query("instrument_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'instrument_id' must be an integer",
		})
		return
	}

	segment := c.DefaultQuery("exchange_segment", "IDX_I")

	expiries, err := cc.chainService.Expiries(c.Request.Context(), instrumentID, segment)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to fetch expiry dates",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(expiries),
		"expiries": expiries,
	})
}

// HandleGetWatchlist returns the preset underlyings.
// GET /api/v1/watchlist
func (cc *ChainController) HandleGetWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, cc.watchlist)
}
