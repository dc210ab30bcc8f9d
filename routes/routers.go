package routes

import (
	"hyurimbot/constants"
	"hyurimbot/controllers"
	"hyurimbot/middleware"
	"hyurimbot/services"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies 라우팅에 필요한 서비스 묶음
type Dependencies struct {
	DB        *gorm.DB
	Redis     *redis.Client
	JobQueue  *services.JobQueue
	Recommend *services.RecommendService
	Logger    logger.Logger
}

// SetupRoutes API 라우트 구성
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.SessionMiddleware())

	authController := controllers.NewAuthController(deps.Redis)
	forestController := controllers.NewForestController(deps.DB, deps.Redis, deps.Logger)
	accommodationController := controllers.NewAccommodationController(deps.DB, deps.Logger)
	facilityController := controllers.NewFacilityController(deps.DB, deps.Logger)
	discountController := controllers.NewDiscountController(deps.DB, deps.Logger)
	crawlController := controllers.NewCrawlController(deps.JobQueue)
	recommendController := controllers.NewRecommendController(deps.Recommend)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/logout", middleware.AuthMiddleware(), authController.Logout)
		}

		// 조회 API는 인증 없이 공개
		api.GET("/forests", forestController.GetForests)
		api.GET("/stats", forestController.GetStats)
		api.GET("/accommodations", accommodationController.GetAccommodations)
		api.GET("/facilities", facilityController.GetFacilities)
		api.GET("/discounts", discountController.GetDiscounts)

		api.POST("/recommend", recommendController.Recommend)
		api.GET("/recommend/trending", recommendController.Trending)
		api.POST("/recommend/reload", middleware.AuthMiddleware(constants.RoleAdmin), recommendController.Reload)

		// 크롤링은 관리자 전용
		crawl := api.Group("/crawl", middleware.AuthMiddleware(constants.RoleAdmin))
		{
			crawl.POST("/basic", crawlController.CrawlBasic)
			crawl.POST("/detailed", crawlController.CrawlDetailed)
			crawl.POST("/discount-policies", crawlController.CrawlDiscounts)
			crawl.GET("/jobs/:id", crawlController.GetJob)
		}
	}
}
