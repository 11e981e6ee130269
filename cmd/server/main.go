package main

import (
	"log"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/database"
	"github.com/Philanthrify/donation-service/internal/event"
	"github.com/Philanthrify/donation-service/internal/logger"
	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/Philanthrify/donation-service/internal/nft"
	"github.com/Philanthrify/donation-service/internal/router"
	"github.com/Philanthrify/donation-service/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.InitFromConfig(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 选择徽章签发者
	var issuer nft.Issuer
	if cfg.Chain.Enabled {
		chainIssuer, err := nft.NewChainIssuer(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain issuer: %v", err)
		}
		issuer = chainIssuer
	} else {
		issuer = nft.NewLocalIssuer()
	}

	// 初始化捐赠归因引擎
	donationLogic := logic.NewDonationLogic(db, issuer, cfg.Nft)

	// 初始化事件投递器
	publisher, err := event.NewPublisher(db, 10, nil)
	if err != nil {
		logger.Fatal("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Stop()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, donationLogic, cfg)

	// 启动定时任务
	manager := task.Start(db, publisher, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
