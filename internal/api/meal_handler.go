package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealHandler serves the ingredient and meal catalogs.
type MealHandler struct {
	mealService service.MealService
}

func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

type IngredientRequest struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories" binding:"gte=0"` // Per 100 g
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
}

func (r IngredientRequest) input() service.IngredientInput {
	return service.IngredientInput{
		Name:    r.Name,
		Per100g: domain.Nutrition{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fat: r.Fat},
	}
}

type MealItemRequest struct {
	IngredientID string  `json:"ingredientId" binding:"required"`
	Grams        float64 `json:"grams" binding:"required,gt=0"`
}

type MealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Type        domain.MealType   `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
	Items       []MealItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r MealRequest) input(c *gin.Context) (service.MealInput, bool) {
	in := service.MealInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Items:       make([]domain.MealItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		id, err := primitive.ObjectIDFromHex(item.IngredientID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid ingredientId format.")
			return service.MealInput{}, false
		}
		in.Items = append(in.Items, domain.MealItem{IngredientID: id, Grams: item.Grams})
	}
	return in, true
}

// --- Ingredients ---

// CreateIngredient godoc
// @Summary Add an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ingredient body IngredientRequest true "Nutrition per 100 g"
// @Success 201 {object} domain.Ingredient
// @Failure 409 {object} gin.H "Name already taken"
// @Router /ingredients [post]
func (h *MealHandler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ingredient, err := h.mealService.CreateIngredient(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// ListIngredients godoc
// @Summary List ingredients
// @Tags Ingredients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Ingredient
// @Router /ingredients [get]
func (h *MealHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.mealService.ListIngredients(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *MealHandler) GetIngredient(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "ingredientId")
	if !ok {
		return
	}
	ingredient, err := h.mealService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *MealHandler) UpdateIngredient(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "ingredientId")
	if !ok {
		return
	}
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ingredient, err := h.mealService.UpdateIngredient(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *MealHandler) DeleteIngredient(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "ingredientId")
	if !ok {
		return
	}
	if err := h.mealService.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Meals ---

// CreateMeal godoc
// @Summary Compose a meal from ingredients
// @Description Nutrition is computed from the ingredients when the meal is saved.
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body MealRequest true "Meal definition"
// @Success 201 {object} domain.Meal
// @Failure 404 {object} gin.H "Unknown ingredient"
// @Failure 409 {object} gin.H "Name already taken"
// @Router /meals [post]
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	meal, err := h.mealService.CreateMeal(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListMeals godoc
// @Summary List meals
// @Tags Meals
// @Produce json
// @Security BearerAuth
// @Param type query string false "breakfast, lunch, dinner or snack"
// @Success 200 {array} domain.Meal
// @Router /meals [get]
func (h *MealHandler) ListMeals(c *gin.Context) {
	meals, err := h.mealService.ListMeals(c.Request.Context(), domain.MealType(c.Query("type")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if meals == nil {
		meals = []domain.Meal{}
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "mealId")
	if !ok {
		return
	}
	meal, err := h.mealService.GetMeal(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) UpdateMeal(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "mealId")
	if !ok {
		return
	}
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	in, ok := req.input(c)
	if !ok {
		return
	}
	meal, err := h.mealService.UpdateMeal(c.Request.Context(), id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := parseObjectIDParam(c, "mealId")
	if !ok {
		return
	}
	if err := h.mealService.DeleteMeal(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
