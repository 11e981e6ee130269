package router

import (
	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/handler"
	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/Philanthrify/donation-service/internal/metrics"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, donationLogic *logic.DonationLogic, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "donation-service",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 捐赠相关路由
		donationHandler := handler.NewDonationHandler(donationLogic, db)
		donations := v1.Group("/donations")
		{
			donations.POST("", donationHandler.Donate)
			donations.POST("/batch", donationHandler.DonateBatch)
		}

		// 捐赠者查询路由
		donorHandler := handler.NewDonorHandler(donationLogic)
		donors := v1.Group("/donors")
		{
			donors.GET("/:address/profile", donorHandler.GetDonorProfile)
			donors.GET("/:address/donations", donorHandler.GetDonorDonations)
			donors.GET("/:address/badge", donorHandler.GetDonorBadge)
		}

		// 实体登记路由
		entityHandler := handler.NewEntityHandler(db)
		entities := v1.Group("/entities")
		{
			entities.POST("", entityHandler.CreateEntity)
			entities.GET("", entityHandler.GetEntities)
		}

		// 全网统计路由
		statsHandler := handler.NewStatsHandler(donationLogic)
		v1.GET("/stats", statsHandler.GetGlobalStats)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
