package api

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	processor service.WorkoutProcessor
}

func NewWorkoutHandler(processor service.WorkoutProcessor) *WorkoutHandler {
	return &WorkoutHandler{processor: processor}
}

// WorkoutCompletedRequest is sent by the workout recorder once a session is final.
type WorkoutCompletedRequest struct {
	ExerciseIDs  []string                      `json:"exerciseIds" binding:"required,min=1"`
	MetricTotals map[string]map[string]float64 `json:"metricTotals"`
	CompletedAt  *time.Time                    `json:"completedAt"`
}

// WorkoutCompleted credits a finished workout to the caller's auto-tracking goals.
// Per-goal failures are reported as a count; the request itself still succeeds.
func (h *WorkoutHandler) WorkoutCompleted(c *gin.Context) {
	var req WorkoutCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	summary := domain.WorkoutSummary{
		UserID:       currentUserID(c),
		ExerciseIDs:  req.ExerciseIDs,
		MetricTotals: req.MetricTotals,
	}
	if req.CompletedAt != nil {
		summary.CompletedAt = req.CompletedAt.UTC()
	}

	result, err := h.processor.ProcessWorkoutCompletion(c.Request.Context(), summary)
	if err != nil {
		abortWithServiceError(c, err, "Failed to process workout")
		return
	}
	c.JSON(http.StatusOK, result)
}
