package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/thechaitanyaanand/Minsoto/internal/auth"
	"github.com/thechaitanyaanand/Minsoto/internal/config"
	"github.com/thechaitanyaanand/Minsoto/internal/database"
	"github.com/thechaitanyaanand/Minsoto/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "github.com/thechaitanyaanand/Minsoto/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Minsoto API
// @version         1.0
// @description     This is the API for the Minsoto social network.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
			authRoutes.PUT("/username", auth.AuthMiddleware(), handler.SetUsername)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me", handler.UpdateMe)
			userRoutes.GET("/:id", handler.GetUserByID)
		}

		// Interest routes (public browsing, token optional)
		interestRoutes := apiV1.Group("/interests")
		interestRoutes.Use(auth.OptionalAuthMiddleware())
		{
			interestRoutes.GET("", handler.GetInterests)
		}

		// Connection routes (protected)
		connectionRoutes := apiV1.Group("/connections")
		connectionRoutes.Use(auth.AuthMiddleware())
		{
			connectionRoutes.GET("", handler.GetMyConnections)
			connectionRoutes.POST("/requests", handler.SendConnectionRequest)
			connectionRoutes.GET("/requests", handler.ListConnectionRequests)
			connectionRoutes.POST("/requests/:id/respond", handler.RespondToRequest)
		}

		// Circle routes (protected)
		circleRoutes := apiV1.Group("/circles")
		circleRoutes.Use(auth.AuthMiddleware())
		{
			circleRoutes.POST("", handler.CreateCircle)
			circleRoutes.GET("", handler.GetCircles)
			circleRoutes.GET("/my", handler.GetMyCircles)
			circleRoutes.GET("/:id", handler.GetCircleByID)
			circleRoutes.POST("/:id/join", handler.JoinCircle)
			circleRoutes.POST("/:id/leave", handler.LeaveCircle)
			circleRoutes.DELETE("/:id/members/:userID", handler.KickMember)
			circleRoutes.GET("/:id/events", handler.CircleEvents)
		}

		// Habit routes (protected)
		habitRoutes := apiV1.Group("/habits")
		habitRoutes.Use(auth.AuthMiddleware())
		{
			habitRoutes.POST("", handler.CreateHabit)
			habitRoutes.GET("", handler.GetHabits)
			habitRoutes.GET("/:id", handler.GetHabitByID)
			habitRoutes.PUT("/:id", handler.UpdateHabit)
			habitRoutes.DELETE("/:id", handler.DeleteHabit)
			habitRoutes.POST("/:id/complete", handler.ToggleHabitCompletion)
			habitRoutes.GET("/:id/entries", handler.GetHabitEntries)
		}

		// Post routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.GET("/feed", handler.GetFeed)
			postRoutes.POST("/:id/like", handler.ToggleLikePost)
			postRoutes.GET("/:id/comments", handler.GetComments)
			postRoutes.POST("/:id/comments", handler.CreateComment)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Interests CRUD
			interests := adminRoutes.Group("/interests")
			{
				interests.POST("", handler.CreateInterest)
				interests.PUT("/:id", handler.UpdateInterest)
				interests.DELETE("/:id", handler.DeleteInterest)
			}
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}
