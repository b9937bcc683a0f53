package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesboard/internal/handlers"
	"salesboard/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	installHandler *handlers.InstallHandler,
	webhookHandler *handlers.WebhookHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/login", authHandler.Login)

	r.GET("/oauth/hubspot", oauthHandler.Authorize)
	r.GET("/oauth/hubspot/callback", oauthHandler.Callback)

	r.POST("/webhooks/hubspot", webhookHandler.Handle)

	// лидерборд авторизуется access token-ом HubSpot, не нашим JWT
	gamification := r.Group("/gamification")
	{
		gamification.GET("/leaderboard", leaderboardHandler.Get)
		gamification.GET("/leaderboard/pdf", leaderboardHandler.GetPDF)
	}

	// ---- admin (JWT)
	installs := r.Group("/hubspot/installs", middleware.AuthMiddleware())
	{
		installs.GET("/", installHandler.List)
		installs.GET("/:portal_id", installHandler.GetByPortalID)
		installs.DELETE("/:portal_id", installHandler.Delete)
	}

	return r
}
