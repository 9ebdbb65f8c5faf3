package api

import (
	"alcyxob/fittrack/internal/domain" // Needed for RoleMiddleware
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services bundles what the handlers depend on.
type Services struct {
	Auth       service.AuthService
	Profile    service.ProfileService
	Meal       service.MealService
	Exercise   service.ExerciseService
	Plan       service.PlanService
	Assignment service.AssignmentService
	Tracking   service.TrackingService
	Progress   service.ProgressService
}

// NewRouter builds a gin engine with request logging, panic recovery and
// every route registered.
func NewRouter(logger *zap.Logger, jwtSecret string, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())
	SetupRoutes(router, jwtSecret, svc)
	return router
}

func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profile)
	mealHandler := NewMealHandler(svc.Meal)
	exerciseHandler := NewExerciseHandler(svc.Exercise)
	planHandler := NewPlanHandler(svc.Plan)
	assignmentHandler := NewAssignmentHandler(svc.Assignment)
	logHandler := NewLogHandler(svc.Tracking)
	progressHandler := NewProgressHandler(svc.Progress)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

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
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		profileGroup := protected.Group("/profile")
		{
			profileGroup.POST("", profileHandler.CreateProfile)
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
		}

		// --- Catalog Routes ---
		// Reads are open to any authenticated user, writes need the admin role.
		ingredientGroup := protected.Group("/ingredients")
		{
			ingredientGroup.GET("", mealHandler.ListIngredients)
			ingredientGroup.GET("/:ingredientId", mealHandler.GetIngredient)
			ingredientGroup.POST("", adminOnly, mealHandler.CreateIngredient)
			ingredientGroup.PUT("/:ingredientId", adminOnly, mealHandler.UpdateIngredient)
			ingredientGroup.DELETE("/:ingredientId", adminOnly, mealHandler.DeleteIngredient)
		}

		mealGroup := protected.Group("/meals")
		{
			mealGroup.GET("", mealHandler.ListMeals)
			mealGroup.GET("/:mealId", mealHandler.GetMeal)
			mealGroup.POST("", adminOnly, mealHandler.CreateMeal)
			mealGroup.PUT("/:mealId", adminOnly, mealHandler.UpdateMeal)
			mealGroup.DELETE("/:mealId", adminOnly, mealHandler.DeleteMeal)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.POST("", adminOnly, exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:exerciseId", adminOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", adminOnly, exerciseHandler.DeleteExercise)
		}

		planGroup := protected.Group("/nutrition-plans")
		{
			planGroup.GET("", planHandler.ListNutritionPlans)
			planGroup.GET("/:planId", planHandler.GetNutritionPlan)
			planGroup.POST("", adminOnly, planHandler.CreateNutritionPlan)
			planGroup.PUT("/:planId", adminOnly, planHandler.UpdateNutritionPlan)
			planGroup.DELETE("/:planId", adminOnly, planHandler.DeleteNutritionPlan)
		}

		routineGroup := protected.Group("/routines")
		{
			routineGroup.GET("", planHandler.ListRoutines)
			routineGroup.GET("/:routineId", planHandler.GetRoutine)
			routineGroup.POST("", adminOnly, planHandler.CreateRoutine)
			routineGroup.PUT("/:routineId", adminOnly, planHandler.UpdateRoutine)
			routineGroup.DELETE("/:routineId", adminOnly, planHandler.DeleteRoutine)
		}

		// --- Assignment Routes ---
		assignmentGroup := protected.Group("/assignments")
		{
			assignmentGroup.POST("", assignmentHandler.Assign)
			assignmentGroup.GET("", assignmentHandler.ListAssignments)
			assignmentGroup.GET("/active", assignmentHandler.GetActive)
			assignmentGroup.GET("/:assignmentId", assignmentHandler.GetAssignment)
			assignmentGroup.POST("/:assignmentId/advance", assignmentHandler.Advance)
			assignmentGroup.POST("/:assignmentId/complete", assignmentHandler.Complete)
			assignmentGroup.POST("/:assignmentId/cancel", assignmentHandler.Cancel)
			assignmentGroup.POST("/:assignmentId/pause", assignmentHandler.Pause)
			assignmentGroup.POST("/:assignmentId/resume", assignmentHandler.Resume)
		}

		// --- Log & Stats Routes ---
		logGroup := protected.Group("/logs")
		{
			logGroup.POST("/meals", logHandler.LogMeal)
			logGroup.GET("/meals", logHandler.ListMealLogs)
			logGroup.POST("/exercises", logHandler.LogExercise)
			logGroup.GET("/exercises", logHandler.ListExerciseLogs)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/calories", logHandler.SumCalories)
			statsGroup.GET("/categories", logHandler.StatsByCategory)
			statsGroup.GET("/daily", logHandler.DailySummary)
		}

		// --- Progress Routes ---
		progressGroup := protected.Group("/progress")
		{
			progressGroup.POST("", progressHandler.CreateEntry)
			progressGroup.GET("", progressHandler.ListEntries)
			progressGroup.GET("/:entryId", progressHandler.GetEntry)
			progressGroup.POST("/:entryId/photo/upload-url", progressHandler.RequestPhotoUploadURL)
			progressGroup.POST("/:entryId/photo/confirm", progressHandler.ConfirmPhoto)
			progressGroup.GET("/:entryId/photo", progressHandler.GetPhotoDownloadURL)
		}
	}
}
