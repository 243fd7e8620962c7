package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Bhatter1986/Options-analysis/config"
	"github.com/Bhatter1986/Options-analysis/controllers"
	"github.com/Bhatter1986/Options-analysis/database"
	"github.com/Bhatter1986/Options-analysis/interfaces"
	"github.com/Bhatter1986/Options-analysis/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()

	watchlist, err := config.LoadWatchlist(cfg.WatchlistPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load watchlist")
	}

	storage, err := database.NewLocalStorage(cfg.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open instrument database")
	}
	defer storage.Close()

	var cache interfaces.PayloadCache
	if cfg.RedisURL != "" {
		redisCache, err := services.NewRedisPayloadCache(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		cache = redisCache
		logger.Info("Using Redis payload cache")
	} else {
		cache = services.NewMemoryPayloadCache()
		logger.Info("Using in-memory payload cache")
	}

	dhanClient := services.NewDhanClient(cfg.DhanEnv, cfg.DhanAccessToken, cfg.DhanClientID)
	chainService := services.NewChainService(dhanClient, cache)
	instrumentService := services.NewInstrumentService(storage)
	geminiService := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)

	chainController := controllers.NewChainController(chainService, watchlist)
	instrumentController := controllers.NewInstrumentController(instrumentService)
	aiController := controllers.NewAIController(geminiService, chainService)

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"dhan_env": cfg.DhanEnv,
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/optionchain", chainController.HandleGetOptionChain)
		v1.GET("/optionchain/expiries", chainController.HandleGetExpiries)
		v1.GET("/watchlist", chainController.HandleGetWatchlist)

		v1.GET("/instruments", instrumentController.HandleListInstruments)
		v1.GET("/instruments/search", instrumentController.HandleSearchInstruments)
		v1.POST("/instruments/refresh", instrumentController.HandleRefreshInstruments)

		v1.POST("/ai/analyze", aiController.HandleAnalyze)
	}

	logger.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"dhan_env": cfg.DhanEnv,
	}).Info("Starting options analysis server")

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}
