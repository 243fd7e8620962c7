package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bhatter1986/Options-analysis/services"
)

// AIController handles AI-powered chain summary requests
type AIController struct {
	geminiService *services.GeminiService
	chainService  *services.ChainService
}

// NewAIController creates a new AI controller
func NewAIController(geminiService *services.GeminiService, chainService *services.ChainService) *AIController {
	return &AIController{
		geminiService: geminiService,
		chainService:  chainService,
	}
}

// AnalyzeRequest represents an AI summary request
type AnalyzeRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	Context string `json:"context"`
}

// HandleAnalyze answers an analyst prompt about the option chain.
// POST /api/v1/ai/analyze
//
// When no context is supplied, the last fetched chain payload is rendered
// into the prompt so questions like "where is the support?" refer to the
// table the analyst is looking at.
func (ac *AIController) HandleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	context := req.Context
	if context == "" {
		if payload, err := ac.chainService.LastPayload(c.Request.Context()); err == nil {
			context = services.RenderChainContext(payload)
		}
	}

	answer, err := ac.geminiService.AnalyzeChain(req.Prompt, context)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "AI call failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"answer": answer,
	})
}
