package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novis10813/twse-api/internal/api/handlers"
	"github.com/novis10813/twse-api/internal/service"
	"github.com/novis10813/twse-api/internal/utils"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	chipHandler := handlers.NewChipHandler(services.Chip, utils.NewDateResolver())

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 基本的健康檢查
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "twse-api",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	// 籌碼資料相關
	chip := r.Group("/api/v1/chip")
	{
		chip.GET("/summary", chipHandler.GetChipSummary)     // 三大法人買賣金額統計
		chip.GET("/stocks", chipHandler.GetStockChips)       // 個股買賣超列表
		chip.GET("/stocks/top", chipHandler.GetTopMovers)    // 買賣超排行
		chip.GET("/stock/:code", chipHandler.GetStockDetail) // 個股籌碼詳情
	}
}
