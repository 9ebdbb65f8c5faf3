package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler records meals and exercises and serves the summaries.
type LogHandler struct {
	trackingService service.TrackingService
}

func NewLogHandler(trackingService service.TrackingService) *LogHandler {
	return &LogHandler{trackingService: trackingService}
}

type MealLogRequest struct {
	MealID       string          `json:"mealId" binding:"required"`
	MealType     domain.MealType `json:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Servings     float64         `json:"servings" binding:"required,gt=0"`
	ConsumedAt   time.Time       `json:"consumedAt"` // RFC 3339, defaults to now
	AssignmentID *string         `json:"assignmentId"`
	Notes        string          `json:"notes"`
}

type ExerciseLogRequest struct {
	ExerciseID      string    `json:"exerciseId" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
	PerformedAt     time.Time `json:"performedAt"` // RFC 3339, defaults to now
	AssignmentID    *string   `json:"assignmentId"`
	Notes           string    `json:"notes"`
}

// LogMeal godoc
// @Summary Record an eaten meal
// @Description Calories are computed from the meal and the servings at save time.
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body MealLogRequest true "Meal entry"
// @Success 201 {object} domain.MealLog
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Meal or profile not found"
// @Router /logs/meals [post]
func (h *LogHandler) LogMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	mealID, err := primitive.ObjectIDFromHex(req.MealID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mealId format.")
		return
	}
	assignmentID, ok := parseOptionalObjectID(c, "assignmentId", req.AssignmentID)
	if !ok {
		return
	}

	entry, err := h.trackingService.LogMeal(c.Request.Context(), userID, service.MealLogInput{
		MealID:       mealID,
		MealType:     req.MealType,
		Servings:     req.Servings,
		ConsumedAt:   req.ConsumedAt,
		AssignmentID: assignmentID,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LogExercise godoc
// @Summary Record a training session
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body ExerciseLogRequest true "Exercise entry"
// @Success 201 {object} domain.ExerciseLog
// @Router /logs/exercises [post]
func (h *LogHandler) LogExercise(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ExerciseLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exerciseId format.")
		return
	}
	assignmentID, ok := parseOptionalObjectID(c, "assignmentId", req.AssignmentID)
	if !ok {
		return
	}

	entry, err := h.trackingService.LogExercise(c.Request.Context(), userID, service.ExerciseLogInput{
		ExerciseID:      exerciseID,
		DurationMinutes: req.DurationMinutes,
		PerformedAt:     req.PerformedAt,
		AssignmentID:    assignmentID,
		Notes:           req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListMealLogs godoc
// @Summary List meal entries in a date range
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {array} domain.MealLog
// @Router /logs/meals [get]
func (h *LogHandler) ListMealLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	entries, err := h.trackingService.ListMealLogs(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.MealLog{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *LogHandler) ListExerciseLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	entries, err := h.trackingService.ListExerciseLogs(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if entries == nil {
		entries = []domain.ExerciseLog{}
	}
	c.JSON(http.StatusOK, entries)
}

// SumCalories godoc
// @Summary Calories consumed and burned in a date range
// @Description Both ends are inclusive calendar days in UTC. No entries sum to zero.
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} service.CalorieTotals
// @Failure 400 {object} gin.H "from after to"
// @Router /stats/calories [get]
func (h *LogHandler) SumCalories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	totals, err := h.trackingService.SumCalories(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// StatsByCategory godoc
// @Summary Entries grouped by meal type and by exercise
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} service.CategoryStats
// @Router /stats/categories [get]
func (h *LogHandler) StatsByCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	stats, err := h.trackingService.StatsByCategory(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DailySummary godoc
// @Summary One energy balance row per day
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {array} domain.DailySummary
// @Router /stats/daily [get]
func (h *LogHandler) DailySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	rows, err := h.trackingService.DailySummary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
