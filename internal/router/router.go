package router

import (
	"net/http"
	"time"

	"github.com/autonear/autonear-backend/config"
	"github.com/autonear/autonear-backend/internal/app/controller"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler the router mounts.
type Controllers struct {
	Auth           *controller.AuthController
	Shop           *controller.ShopController
	ServiceRequest *controller.ServiceRequestController
	ShopRequest    *controller.ShopRequestController
	Admin          *controller.AdminController
	Chat           *controller.ChatController
	Geocode        *controller.GeocodeController
	Upload         *controller.UploadController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	admins         middleware.AdminChecker
	config         *config.Config
}

func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	admins middleware.AdminChecker,
	cfg *config.Config,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		admins:         admins,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(corsConfig(r.config.CORS.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "AutoNear API is running",
		})
	})

	ctrl := r.controllers
	auth := r.authMiddleware.Authenticate()
	verified := r.authMiddleware.RequireVerifiedEmail()

	router.GET("/api/shops", ctrl.Shop.ListShopsRaw)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", ctrl.Auth.Register)
			authGroup.POST("/login", ctrl.Auth.Login)
			authGroup.POST("/refresh", ctrl.Auth.RefreshToken)
			authGroup.POST("/forgot-password", ctrl.Auth.ForgotPassword)
			authGroup.POST("/reset-password", ctrl.Auth.ResetPassword)
			authGroup.POST("/send-verification", ctrl.Auth.SendVerification)
			authGroup.POST("/verify-email", ctrl.Auth.VerifyEmail)
			authGroup.POST("/logout", auth, ctrl.Auth.Logout)
			authGroup.GET("/me", auth, ctrl.Auth.GetMe)
			authGroup.PUT("/me", auth, ctrl.Auth.UpdateMe)
		}

		v1.GET("/meta", ctrl.Shop.GetMeta)
		v1.GET("/geocode/reverse", ctrl.Geocode.Reverse)

		shops := v1.Group("/shops")
		{
			shops.GET("", ctrl.Shop.ListShops)
			shops.GET("/:id", ctrl.Shop.GetShop)
		}

		v1.POST("/shop-requests", ctrl.ShopRequest.Submit)

		requests := v1.Group("/service-requests")
		{
			requests.POST("", ctrl.ServiceRequest.Submit)
			requests.GET("/mine", auth, verified, ctrl.ServiceRequest.ListMine)
			requests.GET("/:id/messages", auth, verified, ctrl.Chat.GetMessages)
			requests.POST("/:id/messages", auth, verified, ctrl.Chat.SendMessage)
		}

		v1.GET("/chat/ws", auth, verified, ctrl.Chat.WebSocketHandler)

		admin := v1.Group("/admin")
		admin.Use(auth, r.authMiddleware.RequireAdmin(r.admins))
		{
			admin.GET("/queue", ctrl.Admin.Queue)

			admin.GET("/service-requests", ctrl.ServiceRequest.ListAll)
			admin.GET("/service-requests/:id", ctrl.ServiceRequest.Get)
			admin.PATCH("/service-requests/:id/status", ctrl.ServiceRequest.UpdateStatus)
			admin.DELETE("/service-requests/:id", ctrl.ServiceRequest.Delete)

			admin.GET("/shop-requests", ctrl.ShopRequest.List)
			admin.POST("/shop-requests/:id/approve", ctrl.ShopRequest.Approve)
			admin.POST("/shop-requests/:id/reject", ctrl.ShopRequest.Reject)

			admin.POST("/shops/:id/image/presign", ctrl.Upload.PresignShopImage)
			admin.PUT("/shops/:id/image", ctrl.Upload.AttachShopImage)

			admin.GET("/grants", ctrl.Admin.ListGrants)
			admin.POST("/grants", ctrl.Admin.CreateGrant)
			admin.DELETE("/grants/:email", ctrl.Admin.DeleteGrant)
		}
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			// credentials cannot be combined with a wildcard origin
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}
