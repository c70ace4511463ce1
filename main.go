package main

import (
	"context"
	"log"
	"os"

	"github.com/cride-hq/cride_backend/controllers"
	"github.com/cride-hq/cride_backend/database"
	"github.com/cride-hq/cride_backend/docs"
	"github.com/cride-hq/cride_backend/middleware"
	"github.com/cride-hq/cride_backend/services"
	"github.com/cride-hq/cride_backend/tasks"
	"github.com/cride-hq/cride_backend/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Comparte Ride API
// @version         1.0
// @description     API Server for the Comparte Ride circle and ride sharing platform
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Comparte Ride API"
	docs.SwaggerInfo.Description = "API Server for the Comparte Ride circle and ride sharing platform"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify", controllers.Verify)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Circle routes
		api.GET("/circles", controllers.GetCircles)
		api.POST("/circles", controllers.CreateCircle)
		api.GET("/circles/:slug", controllers.GetCircle)
		api.PUT("/circles/:slug", controllers.UpdateCircle)

		// Membership routes
		api.GET("/circles/:slug/members", controllers.GetMembers)
		api.POST("/circles/:slug/members", controllers.JoinCircle)
		api.GET("/circles/:slug/members/:username", controllers.GetMember)
		api.DELETE("/circles/:slug/members/:username", controllers.RemoveMember)
		api.GET("/circles/:slug/members/:username/invitations", controllers.GetMemberInvitations)

		// Ride routes
		api.GET("/circles/:slug/rides", controllers.GetRides)
		api.POST("/circles/:slug/rides", controllers.CreateRide)
		api.PUT("/circles/:slug/rides/:id", controllers.UpdateRide)
		api.POST("/circles/:slug/rides/:id/join", controllers.JoinRide)
		api.POST("/circles/:slug/rides/:id/rate", controllers.RateRide)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection)

	// Periodic sweep that deactivates finished rides
	sweeper := tasks.NewSweeper(services.NewRideService(database.DB))
	go sweeper.Run(context.Background())

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
