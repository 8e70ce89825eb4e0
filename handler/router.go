package handler

import (
	"net/http"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth      *AuthHandler
	Contracts *ContractHandler
	Templates *TemplateHandler
	Callback  *CallbackHandler
}

// NewRouter wires middleware and routes.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger("/health"))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(cfg.Server.RateLimit, time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/automation/callback", h.Callback.HandleCallback)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", h.Auth.Me)

		protected.POST("/contracts/generate", h.Contracts.Generate)
		protected.GET("/contracts", h.Contracts.List)
		protected.GET("/contracts/:id", h.Contracts.Get)
		protected.GET("/contracts/:id/status", h.Contracts.GetStatus)
		protected.DELETE("/contracts/:id", h.Contracts.Delete)

		protected.GET("/templates", h.Templates.List)
		protected.GET("/templates/:id", h.Templates.Get)
		protected.GET("/templates/:id/blueprint", h.Templates.Blueprint)
	}

	return router
}
