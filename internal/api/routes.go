package api

import (
	"alcyxob/fitness-goals/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	gatherer prometheus.Gatherer,
	goalService service.GoalService,
	workoutProcessor service.WorkoutProcessor,
	exportService service.ExportService, // may be nil
) {
	goalHandler := NewGoalHandler(goalService, exportService)
	workoutHandler := NewWorkoutHandler(workoutProcessor)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		goalGroup := protected.Group("/goals")
		{
			goalGroup.GET("", goalHandler.ListGoals)
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("/:id", goalHandler.GetGoal)
			goalGroup.PUT("/:id", goalHandler.UpdateGoal)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)

			goalGroup.POST("/:id/clone", goalHandler.CloneGoal)
			goalGroup.POST("/:id/pause", goalHandler.PauseGoal)
			goalGroup.POST("/:id/resume", goalHandler.ResumeGoal)
			goalGroup.POST("/:id/export", goalHandler.ExportGoal)

			goalGroup.POST("/:id/progress", goalHandler.AddProgress)
			goalGroup.GET("/:id/progress", goalHandler.ProgressHistory)
			goalGroup.GET("/:id/streak", goalHandler.GetStreak)
		}

		protected.POST("/workouts/completed", workoutHandler.WorkoutCompleted)
	}
}
