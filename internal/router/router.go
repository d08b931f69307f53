package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/config"
	"github.com/jalvarez/washpoint-backend/internal/app/controller"
	"github.com/jalvarez/washpoint-backend/internal/middleware"
	"github.com/jalvarez/washpoint-backend/internal/websocket"
)

type Router struct {
	authController       *controller.AuthController
	carController        *controller.CarController
	assignmentController *controller.AssignmentController
	reportController     *controller.ReportController
	uploadController     *controller.UploadController
	hub                  *websocket.Hub
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	carController *controller.CarController,
	assignmentController *controller.AssignmentController,
	reportController *controller.ReportController,
	uploadController *controller.UploadController,
	hub *websocket.Hub,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		carController:        carController,
		assignmentController: assignmentController,
		reportController:     reportController,
		uploadController:     uploadController,
		hub:                  hub,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Washpoint API is running",
		})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/signup", r.authController.Signup)
		auth.POST("/login", r.authController.Login)
		auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
	}

	cars := router.Group("/cars", r.authMiddleware.Authenticate())
	{
		cars.POST("", r.carController.Register)
		cars.GET("", r.carController.List)
		cars.GET("/:plate", r.carController.Get)
		cars.GET("/:plate/history", r.carController.History)
	}

	assignments := router.Group("/assignments", r.authMiddleware.Authenticate())
	{
		assignments.POST("", r.assignmentController.Create)
		assignments.GET("", r.assignmentController.List)
		assignments.PUT("/:id/complete", r.assignmentController.Complete)
	}

	reports := router.Group("/reports", r.authMiddleware.Authenticate())
	{
		reports.GET("/washes", r.reportController.Washes)
	}

	if r.uploadController != nil {
		uploads := router.Group("/uploads", r.authMiddleware.Authenticate())
		{
			uploads.POST("/wash-photo", r.uploadController.WashPhoto)
		}
	}

	if r.hub != nil {
		router.GET("/ws/board", r.authMiddleware.AuthenticateWebSocket(), r.hub.HandleBoard)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
