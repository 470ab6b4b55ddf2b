package api

import (
	"alcyxob/fitness-bot/internal/domain" // Needed for RoleMiddleware
	"alcyxob/fitness-bot/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Auth      service.AuthService
	Programs  service.ProgramService
	Exercises service.ExerciseService
	Workouts  service.WorkoutService
	Ordering  service.OrderingService
	Menu      MenuResolver
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	menuHandler := NewMenuHandler(services.Menu)
	userHandler := NewUserHandler(services.Programs)
	exerciseHandler := NewExerciseHandler(services.Exercises, services.Workouts, services.Ordering)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/token", authHandler.IssueToken)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
		})

		// POST /api/v1/menu/resolve
		protected.POST("/menu/resolve", menuHandler.Resolve)

		protected.PUT("/profile", userHandler.UpdateProfile)
		protected.POST("/programs", userHandler.CreateProgram)

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			// GET /api/v1/exercises/{id}/sets?session={uuid}
			exerciseGroup.GET("/:id/sets", exerciseHandler.GetSessionSets)
		}
		protected.POST("/sets", exerciseHandler.RecordSet)

		// --- Admin Routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.POST("/days/:dayId/renumber", exerciseHandler.RenumberDay)
			adminGroup.POST("/positions/renumber", exerciseHandler.RenumberAll)
		}
	}
}
