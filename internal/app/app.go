package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"salesboard/internal/cache"
	"salesboard/internal/config"
	"salesboard/internal/handlers"
	"salesboard/internal/hubspot"
	"salesboard/internal/middleware"
	"salesboard/internal/pdf"
	"salesboard/internal/repositories"
	"salesboard/internal/routes"
	"salesboard/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "salesboard/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.JWTKey = []byte(cfg.Admin.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Cache (опционально) ===
	var installCache *cache.InstallCache
	if cfg.Redis.Enabled {
		installCache, err = cache.NewInstallCache(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Redis.TTLSec) * time.Second,
		})
		if err != nil {
			// кэш best-effort: без redis работаем напрямую с БД
			log.Printf("Redis недоступен, кэш установок выключен: %v", err)
			installCache = nil
		}
		defer installCache.Close()
	}

	// === HubSpot ===
	hub := hubspot.NewClient(
		cfg.HubSpot.ClientID,
		cfg.HubSpot.ClientSecret,
		cfg.HubSpot.APIBaseURL,
		cfg.HubSpot.AuthBaseURL,
	)

	// === Repos / Services ===
	installRepo := repositories.NewInstallRepository(db)
	tokenService := services.NewTokenService(installRepo, installCache, hub)
	crmService := services.NewCRMService(tokenService, hub)

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" && cfg.Email.OpsEmail != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.Email.OpsEmail,
		)
	}
	tgService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(cfg.Admin)
	oauthHandler := handlers.NewOAuthHandler(tokenService, crmService, hub, emailService, tgService, cfg.HubSpot.SuccessURL)
	leaderboardHandler := handlers.NewLeaderboardHandler(crmService, pdf.NewReportGenerator())
	installHandler := handlers.NewInstallHandler(installRepo, installCache)
	webhookHandler := handlers.NewWebhookHandler(tokenService, tgService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		oauthHandler,
		leaderboardHandler,
		installHandler,
		webhookHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
