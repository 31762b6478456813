package api

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GoalHandler holds the goal service dependencies.
type GoalHandler struct {
	goalService   service.GoalService
	exportService service.ExportService // nil when object storage is not configured
}

func NewGoalHandler(goalService service.GoalService, exportService service.ExportService) *GoalHandler {
	return &GoalHandler{goalService: goalService, exportService: exportService}
}

// --- DTOs ---

// GoalRequest is the body of goal create and update requests.
type GoalRequest struct {
	Name              string     `json:"name" binding:"required"`
	Description       string     `json:"description"`
	LinkedExerciseIDs []string   `json:"linkedExerciseIds"`
	Metric            string     `json:"metric" binding:"required"`
	TargetValue       float64    `json:"targetValue"`
	TargetUnit        string     `json:"targetUnit"`
	Frequency         string     `json:"frequency" binding:"required"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	IsActive          *bool      `json:"isActive"`
	AutoTrack         bool       `json:"autoTrack"`
}

func (r GoalRequest) toInput() service.GoalInput {
	return service.GoalInput{
		Name:              r.Name,
		Description:       r.Description,
		LinkedExerciseIDs: r.LinkedExerciseIDs,
		Metric:            domain.Metric(r.Metric),
		TargetValue:       r.TargetValue,
		TargetUnit:        r.TargetUnit,
		Frequency:         domain.Frequency(r.Frequency),
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		IsActive:          r.IsActive,
		AutoTrack:         r.AutoTrack,
	}
}

type AddProgressRequest struct {
	Value *float64   `json:"value" binding:"required"`
	At    *time.Time `json:"at"`
}

type StreakResponse struct {
	GoalID string `json:"goalId"`
	Streak int    `json:"streak"`
}

// --- Handler Methods ---

func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.ListGoals(c.Request.Context(), currentUserID(c))
	if err != nil {
		abortWithServiceError(c, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		abortWithServiceError(c, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	goal, err := h.goalService.GetGoal(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to get goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), currentUserID(c), c.Param("id"), req.toInput())
	if err != nil {
		abortWithServiceError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		abortWithServiceError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) CloneGoal(c *gin.Context) {
	goal, err := h.goalService.CloneGoal(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to clone goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) PauseGoal(c *gin.Context) {
	h.setActive(c, false)
}

func (h *GoalHandler) ResumeGoal(c *gin.Context) {
	h.setActive(c, true)
}

func (h *GoalHandler) setActive(c *gin.Context, active bool) {
	goal, err := h.goalService.SetActive(c.Request.Context(), currentUserID(c), c.Param("id"), active)
	if err != nil {
		abortWithServiceError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) AddProgress(c *gin.Context) {
	var req AddProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var at time.Time
	if req.At != nil {
		at = *req.At
	}

	progress, err := h.goalService.AddProgress(c.Request.Context(), currentUserID(c), c.Param("id"), *req.Value, at)
	if err != nil {
		abortWithServiceError(c, err, "Failed to add progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *GoalHandler) ProgressHistory(c *gin.Context) {
	history, err := h.goalService.ProgressHistory(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to get progress history")
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *GoalHandler) GetStreak(c *gin.Context) {
	goalID := c.Param("id")
	streak, err := h.goalService.CalculateStreak(c.Request.Context(), currentUserID(c), goalID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to calculate streak")
		return
	}
	c.JSON(http.StatusOK, StreakResponse{GoalID: goalID, Streak: streak})
}

func (h *GoalHandler) ExportGoal(c *gin.Context) {
	if h.exportService == nil {
		abortWithError(c, http.StatusServiceUnavailable, "Export storage is not configured")
		return
	}

	result, err := h.exportService.ExportGoalHistory(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to export goal history")
		return
	}
	c.JSON(http.StatusCreated, result)
}
