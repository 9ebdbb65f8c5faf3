package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the nutrition plan and routine catalogs.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type NutritionPlanRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	DurationDays  int      `json:"durationDays" binding:"required,gt=0"`
	DailyCalories float64  `json:"dailyCalories" binding:"gte=0"`
	MealIDs       []string `json:"mealIds"`
}

func (r NutritionPlanRequest) input(c *gin.Context) (service.NutritionPlanInput, bool) {
	mealIDs, ok := parseObjectIDs(c, "mealIds", r.MealIDs)
	if !ok {
		return service.NutritionPlanInput{}, false
	}
	return service.NutritionPlanInput{
		Name:          r.Name,
		Description:   r.Description,
		DurationDays:  r.DurationDays,
		DailyCalories: r.DailyCalories,
		MealIDs:       mealIDs,
	}, true
}

type RoutineRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	DurationWeeks int      `json:"durationWeeks" binding:"required,gt=0"`
	Level         string   `json:"level" binding:"omitempty"` // e.g., "Novice", "Medium", "Advanced"
	ExerciseIDs   []string `json:"exerciseIds"`
}

func (r RoutineRequest) input(c *gin.Context) (service.RoutineInput, bool) {
	exerciseIDs, ok := parseObjectIDs(c, "exerciseIds", r.ExerciseIDs)
	if !ok {
		return service.RoutineInput{}, false
	}
	return service.RoutineInput{
		Name:          r.Name,
		Description:   r.Description,
		DurationWeeks: r.DurationWeeks,
		Level:         r.Level,
		ExerciseIDs:   exerciseIDs,
	}, true
}

// --- Nutrition plans ---

// CreateNutritionPlan godoc
// @Summary Add a nutrition plan to the catalog
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body NutritionPlanRequest true "Plan definition"
// @Success 201 {object} domain.NutritionPlan
// @Failure 404 {object} gin.H "Unknown meal"
// @Failure 409 {object} gin.H "Name already taken"
// @Router /nutrition-plans [post]
func (h *PlanHandler) CreateNutritionPlan(c *gin.Context) {
	var req NutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	plan, err := h.planService.CreateNutritionPlan(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) ListNutritionPlans(c *gin.Context) {
	plans, err := h.planService.ListNutritionPlans(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if plans == nil {
		plans = []domain.NutritionPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetNutritionPlan(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetNutritionPlan(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) UpdateNutritionPlan(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}
	var req NutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	plan, err := h.planService.UpdateNutritionPlan(c.Request.Context(), id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) DeleteNutritionPlan(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeleteNutritionPlan(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Routines ---

// CreateRoutine godoc
// @Summary Add a workout routine to the catalog
// @Tags Routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routine body RoutineRequest true "Routine definition"
// @Success 201 {object} domain.Routine
// @Failure 404 {object} gin.H "Unknown exercise"
// @Failure 409 {object} gin.H "Name already taken"
// @Router /routines [post]
func (h *PlanHandler) CreateRoutine(c *gin.Context) {
	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	routine, err := h.planService.CreateRoutine(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, routine)
}

func (h *PlanHandler) ListRoutines(c *gin.Context) {
	routines, err := h.planService.ListRoutines(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if routines == nil {
		routines = []domain.Routine{}
	}
	c.JSON(http.StatusOK, routines)
}

func (h *PlanHandler) GetRoutine(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "routineId")
	if !ok {
		return
	}
	routine, err := h.planService.GetRoutine(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *PlanHandler) UpdateRoutine(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "routineId")
	if !ok {
		return
	}
	var req RoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	routine, err := h.planService.UpdateRoutine(c.Request.Context(), id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (h *PlanHandler) DeleteRoutine(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "routineId")
	if !ok {
		return
	}
	if err := h.planService.DeleteRoutine(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
