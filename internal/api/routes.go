package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/genimage"
	"physiohub/physio-app/internal/service"
	"physiohub/physio-app/internal/storage"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	routineService service.RoutineService,
	genService *genimage.Service,
	fileStorage storage.FileStorage,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService, fileStorage)
	routineHandler := NewRoutineHandler(routineService)
	illustrationHandler := NewIllustrationHandler(genService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
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
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		physioOnly := RoleMiddleware(domain.RolePhysio, domain.RoleAdmin)

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		exerciseGroup.Use(physioOnly)
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.ReplaceExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.GET("/:id/images", exerciseHandler.GetExerciseImageURLs)
			exerciseGroup.GET("/:id/illustrations/prompts", illustrationHandler.PreviewPrompts)
			exerciseGroup.POST("/:id/illustrations", illustrationHandler.GenerateIllustrations)
		}

		// --- Routine Routes ---
		routineGroup := protected.Group("/routines")
		routineGroup.Use(physioOnly)
		{
			routineGroup.POST("", routineHandler.CreateRoutine)
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.GET("/:id", routineHandler.GetRoutine)
			routineGroup.PUT("/:id", routineHandler.ReplaceRoutine)
			routineGroup.PUT("/:id/status", routineHandler.SetRoutineStatus)
			routineGroup.DELETE("/:id", routineHandler.DeleteRoutine)
		}
	}
}
