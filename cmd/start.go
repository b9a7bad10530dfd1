package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/hametuha/hamelp-be/config"
	"github.com/hametuha/hamelp-be/database"
	"github.com/hametuha/hamelp-be/handler"
	"github.com/hametuha/hamelp-be/middleware"
	"github.com/hametuha/hamelp-be/repository"
	"github.com/hametuha/hamelp-be/service"
	"github.com/hametuha/hamelp-be/types"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the FAQ server",
	Long:  `Starts the HTTP server and the background catalog rebuild worker`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		redisClient, err := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}

		db := mongoClient.Database(cfg.MongoDB)

		// Repositories
		faqRepo := repository.NewFaqRepo(db.Collection("faqs"))
		userRepo := repository.NewUserRepo(db.Collection("users"))

		// Services
		catalogStore := database.NewRedisCatalogStore(redisClient)
		rateStore := database.NewRedisRateStore(redisClient)
		catalogService := service.NewCatalogService(faqRepo, catalogStore, cfg.SiteURL, cfg.Catalog)
		admissionService := service.NewAdmissionService(rateStore, cfg.RateLimit)
		faqService := service.NewFaqService(faqRepo, catalogService)
		userService := service.NewUserService(userRepo)

		aiService, err := service.NewAIService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}
		var overviewService service.OverviewService
		if aiService != nil {
			overviewService = service.NewOverviewService(catalogService, aiService, cfg.Context, cfg.Catalog.FullDumpThreshold, nil)
		} else {
			log.Println("No AI provider configured; /hamelp/v1/ai-overview will return ai_unavailable")
		}

		// Handlers
		corsHandler := handler.NewCorsHandler()
		overviewHandler := handler.NewOverviewHandler(overviewService, admissionService)
		faqHandler := handler.NewFaqHandler(faqService)
		loginHandler := handler.NewLoginHandler(userService)

		// Background rebuild worker; content mutations collapse into at
		// most one pending rebuild.
		workerCtx, cancelWorker := context.WithCancel(context.Background())
		defer cancelWorker()
		go catalogService.RunRebuildWorker(workerCtx)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})

		// Public AI overview endpoint; auth is optional and only enriches
		// the prompt and access filtering.
		overview := router.Group("/hamelp/v1")
		overview.Use(middleware.OptionalAuth)
		overview.POST("/ai-overview", overviewHandler.HandleOverview)

		apiV1 := router.Group("/api/v1")
		apiV1.POST("/login", loginHandler.HandleLogin)

		// Editorial routes - editors and up
		adminRoutes := router.Group("/admin/api/v1")
		adminRoutes.Use(middleware.RequireRole(types.USER_ROLE_EDITOR))
		{
			adminRoutes.GET("/faqs", faqHandler.HandleListFaqs)
			adminRoutes.POST("/faqs", faqHandler.HandleCreateFaq)
			adminRoutes.PUT("/faqs", faqHandler.HandleUpdateFaq)
			adminRoutes.DELETE("/faqs", faqHandler.HandleDeleteFaq)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
