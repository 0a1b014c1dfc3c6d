package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/novis10813/twse-api/internal/api"
	"github.com/novis10813/twse-api/internal/config"
	"github.com/novis10813/twse-api/internal/middleware"
	"github.com/novis10813/twse-api/internal/service"
	"github.com/novis10813/twse-api/internal/twse"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如伺服器地址和上游端點等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化 TWSE client
	// 服務本身無狀態，唯一的外部依賴是 TWSE 公開資料端點
	client := twse.NewClient(cfg.TWSE.BaseURL, cfg.TWSE.Timeout())

	// 初始化 services
	services := service.NewServices(client)

	// 設置 Gin 路由
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	api.SetupRoutes(r, services)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
