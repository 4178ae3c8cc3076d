package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/client"
	"heritage-archive-api/internal/handler"
	"heritage-archive-api/internal/metrics"
	"heritage-archive-api/internal/middleware"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	Redis          *redis.Client
	JWTSecret      string
	TokenTTL       time.Duration
	S3Client       client.S3ClientInterface
	Metrics        *metrics.Metrics
	BasePath       string
	AllowedOrigins []string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "heritage-archive-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "heritage-archive-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "heritage-archive-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "heritage-archive-api"})
			return
		}
		if cfg.Redis != nil {
			if err := cfg.Redis.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(503, gin.H{"status": "not ready", "service": "heritage-archive-api"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready", "service": "heritage-archive-api"})
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	articleRepo := repository.NewArticleRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	artifactRepo := repository.NewArtifactRepository(cfg.DB)
	historyRepo := repository.NewOralHistoryRepository(cfg.DB)
	researchRepo := repository.NewResearchRepository(cfg.DB)
	educationRepo := repository.NewEducationRepository(cfg.DB)
	eventRepo := repository.NewEventRepository(cfg.DB)
	donationRepo := repository.NewDonationRepository(cfg.DB)
	productRepo := repository.NewProductRepository(cfg.DB)
	orderRepo := repository.NewOrderRepository(cfg.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Redis, cfg.JWTSecret, cfg.TokenTTL, cfg.Logger)
	articleService := service.NewArticleService(articleRepo, cfg.Redis, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, articleRepo, cfg.Metrics, cfg.Logger)
	artifactService := service.NewArtifactService(artifactRepo, cfg.S3Client, cfg.Logger)
	historyService := service.NewOralHistoryService(historyRepo, cfg.S3Client, cfg.Logger)
	researchService := service.NewResearchService(researchRepo, cfg.Logger)
	educationService := service.NewEducationService(educationRepo, cfg.Logger)
	eventService := service.NewEventService(eventRepo, cfg.Logger)
	donationService := service.NewDonationService(donationRepo, cfg.Logger)
	shopService := service.NewShopService(productRepo, orderRepo, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)
	commentHandler := handler.NewCommentHandler(commentService)
	artifactHandler := handler.NewArtifactHandler(artifactService)
	historyHandler := handler.NewOralHistoryHandler(historyService)
	researchHandler := handler.NewResearchHandler(researchService)
	educationHandler := handler.NewEducationHandler(educationService)
	eventHandler := handler.NewEventHandler(eventService)
	donationHandler := handler.NewDonationHandler(donationService)
	shopHandler := handler.NewShopHandler(shopService)

	// API routes group
	api := r.Group(cfg.BasePath)

	// Expose metrics and health under the base path as well, for ingress
	// setups that only forward the API prefix
	if cfg.BasePath != "" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy", "service": "heritage-archive-api"})
		})
	}

	authRequired := middleware.Auth(authService, cfg.DB)
	authOptional := middleware.OptionalAuth(authService, cfg.DB)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/logout", authRequired, authHandler.Logout)
		auth.GET("/me", authRequired, authHandler.Me)
	}

	// Admin user management
	api.PATCH("/users/:userId/role", authRequired, authHandler.UpdateUserRole)

	// ============================================================
	// Article routes
	// ============================================================
	articles := api.Group("/articles")
	{
		articles.GET("", authOptional, articleHandler.ListArticles)
		articles.GET("/:articleId", authOptional, articleHandler.GetArticle)
		articles.GET("/slug/:slug", authOptional, articleHandler.GetArticleBySlug)
		articles.POST("", authRequired, articleHandler.CreateArticle)
		articles.PUT("/:articleId", authRequired, articleHandler.UpdateArticle)
		articles.POST("/:articleId/publish", authRequired, articleHandler.PublishArticle)
		articles.POST("/:articleId/archive", authRequired, articleHandler.ArchiveArticle)
		articles.DELETE("/:articleId", authRequired, articleHandler.DeleteArticle)

		// Comments of an article
		articles.GET("/:articleId/comments", authOptional, commentHandler.ListComments)
	}

	// ============================================================
	// Comment routes
	// ============================================================
	comments := api.Group("/comments")
	{
		comments.POST("", authRequired, commentHandler.CreateComment)
		comments.PUT("/:commentId", authRequired, commentHandler.UpdateComment)
		comments.DELETE("/:commentId", authRequired, commentHandler.DeleteComment)
		comments.POST("/:commentId/like", authRequired, commentHandler.ToggleLike)
		comments.PUT("/:commentId/approve", authRequired, commentHandler.ApproveComment)
		comments.GET("/pending", authRequired, commentHandler.ListPendingComments)
	}

	// ============================================================
	// Artifact routes
	// ============================================================
	artifacts := api.Group("/artifacts")
	{
		artifacts.GET("", artifactHandler.ListArtifacts)
		artifacts.GET("/:artifactId", artifactHandler.GetArtifact)
		artifacts.GET("/:artifactId/media", artifactHandler.GetMediaDownload)
		artifacts.POST("", authRequired, artifactHandler.CreateArtifact)
		artifacts.PUT("/:artifactId", authRequired, artifactHandler.UpdateArtifact)
		artifacts.DELETE("/:artifactId", authRequired, artifactHandler.DeleteArtifact)
		artifacts.POST("/:artifactId/media/upload-url", authRequired, artifactHandler.RequestMediaUpload)
	}

	// ============================================================
	// Oral history routes
	// ============================================================
	histories := api.Group("/oral-histories")
	{
		histories.GET("", historyHandler.ListOralHistories)
		histories.GET("/:historyId", historyHandler.GetOralHistory)
		histories.GET("/:historyId/media", historyHandler.GetMediaDownload)
		histories.POST("", authRequired, historyHandler.CreateOralHistory)
		histories.PUT("/:historyId", authRequired, historyHandler.UpdateOralHistory)
		histories.DELETE("/:historyId", authRequired, historyHandler.DeleteOralHistory)
		histories.POST("/:historyId/media/upload-url", authRequired, historyHandler.RequestMediaUpload)
	}

	// ============================================================
	// Research routes
	// ============================================================
	research := api.Group("/research")
	{
		research.GET("", researchHandler.ListResearchItems)
		research.GET("/:itemId", researchHandler.GetResearchItem)
		research.POST("", authRequired, researchHandler.CreateResearchItem)
		research.PUT("/:itemId", authRequired, researchHandler.UpdateResearchItem)
		research.DELETE("/:itemId", authRequired, researchHandler.DeleteResearchItem)
	}

	// ============================================================
	// Education routes
	// ============================================================
	education := api.Group("/education")
	{
		education.GET("", educationHandler.ListResources)
		education.GET("/:resourceId", educationHandler.GetResource)
		education.POST("", authRequired, educationHandler.CreateResource)
		education.PUT("/:resourceId", authRequired, educationHandler.UpdateResource)
		education.DELETE("/:resourceId", authRequired, educationHandler.DeleteResource)
	}

	// ============================================================
	// Event routes
	// ============================================================
	events := api.Group("/events")
	{
		events.GET("", eventHandler.ListEvents)
		events.GET("/:eventId", eventHandler.GetEvent)
		events.POST("", authRequired, eventHandler.CreateEvent)
		events.PUT("/:eventId", authRequired, eventHandler.UpdateEvent)
		events.DELETE("/:eventId", authRequired, eventHandler.DeleteEvent)
	}

	// ============================================================
	// Donation routes
	// ============================================================
	donations := api.Group("/donations")
	{
		donations.POST("", authOptional, donationHandler.CreateDonation)
		donations.POST("/:donationId/complete", authRequired, donationHandler.CompleteDonation)
		donations.GET("", authRequired, donationHandler.ListDonations)
	}

	// ============================================================
	// Shop routes
	// ============================================================
	products := api.Group("/products")
	{
		products.GET("", authOptional, shopHandler.ListProducts)
		products.GET("/:productId", shopHandler.GetProduct)
		products.POST("", authRequired, shopHandler.CreateProduct)
		products.PUT("/:productId", authRequired, shopHandler.UpdateProduct)
		products.DELETE("/:productId", authRequired, shopHandler.DeleteProduct)
	}

	orders := api.Group("/orders")
	orders.Use(authRequired)
	{
		orders.POST("", shopHandler.PlaceOrder)
		orders.GET("", shopHandler.ListMyOrders)
		orders.GET("/:orderId", shopHandler.GetOrder)
		orders.PATCH("/:orderId/status", shopHandler.UpdateOrderStatus)
	}

	return r
}
