package api

import (
	"github.com/SlpAus/card-gacha-backend/internal/card"
	"github.com/SlpAus/card-gacha-backend/internal/gacha"
	"github.com/SlpAus/card-gacha-backend/internal/pack"
	"github.com/SlpAus/card-gacha-backend/internal/platform/config"
	"github.com/SlpAus/card-gacha-backend/internal/stats"
	"github.com/SlpAus/card-gacha-backend/internal/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter 组装全部HTTP路由
func SetupRouter() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.Cfg.Server.Cors.AllowedOrigins
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(user.IdentityMiddleware())

	api := r.Group("/api")
	{
		// 卡牌与模板管理
		api.GET("/cards", card.GetCards)
		api.GET("/cards/:id", card.GetCard)
		api.POST("/cards", card.PostCard)
		api.PUT("/cards/:id", card.PutCard)
		api.DELETE("/cards/:id", card.DeleteCardHandler)
		api.GET("/templates", card.GetTemplates)
		api.GET("/templates/:id", card.GetTemplate)
		api.POST("/templates", card.PostTemplate)
		api.PUT("/templates/:id", card.PutTemplate)

		// 卡池管理
		api.GET("/packs", pack.GetPacks)
		api.GET("/packs/:id", pack.GetPack)
		api.POST("/packs", pack.PostPack)
		api.PUT("/packs/:id", pack.PutPack)
		api.DELETE("/packs/:id", pack.DeletePackHandler)

		// 抽取与历史
		api.POST("/gacha", gacha.PostGacha)
		api.GET("/gacha/history", gacha.GetHistoryHandler)

		// 用户与统计
		api.GET("/user", user.GetProfile)
		api.GET("/user/collection", user.GetCollectionHandler)
		api.GET("/user/statistics", stats.GetUserStatisticsHandler)
		api.GET("/statistics", stats.GetGlobalStatisticsHandler)
	}

	return r
}
