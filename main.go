package main

import (
	"log"
	"net/http"
	"os"

	"hyurimbot/config"
	"hyurimbot/jobs"
	"hyurimbot/routes"
	"hyurimbot/services"
	"hyurimbot/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env 파일을 불러오지 못했습니다, 시스템 환경변수를 사용합니다: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)

	headless := config.GetEnvDefault("CHROMEDP_HEADLESS", "true") != "false"
	fetcher := services.NewPageFetcher(appLogger, headless)
	defer fetcher.Close()

	crawlService := services.NewCrawlService(services.CrawlServiceOptions{
		DB:             config.DB,
		Fetcher:        fetcher,
		Matcher:        services.NewFacilityMatcher(appLogger),
		Extractor:      services.NewDetailExtractor(services.DefaultExtractorSchema(), appLogger),
		DiscountParser: services.NewDiscountParser(appLogger),
		Logger:         appLogger,
		Melody:         m,
		Redis:          config.RedisClient,
	})

	jobQueue := services.NewJobQueue(crawlService, appLogger, 32)
	defer jobQueue.Stop()

	recommendService := services.NewRecommendService(services.RecommendServiceOptions{
		DB:     config.DB,
		Redis:  config.RedisClient,
		Logger: appLogger,
	})
	jobs.SetIndexReloader(recommendService)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, routes.Dependencies{
		DB:        config.DB,
		Redis:     config.RedisClient,
		JobQueue:  jobQueue,
		Recommend: recommendService,
		Logger:    appLogger,
	})

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
