package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest is used for both create and update.
type ProfileRequest struct {
	BirthDate     string               `json:"birthDate"` // YYYY-MM-DD, optional
	Sex           domain.Sex           `json:"sex" binding:"omitempty,oneof=male female"`
	HeightCm      float64              `json:"heightCm" binding:"gte=0"`
	WeightKg      float64              `json:"weightKg" binding:"gte=0"`
	ActivityLevel domain.ActivityLevel `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	Goal          domain.Goal          `json:"goal" binding:"omitempty,oneof=lose maintain gain"`
	DailyCalories float64              `json:"dailyCalories" binding:"gte=0"` // 0 = estimate
}

func (h *ProfileHandler) bind(c *gin.Context) (service.ProfileInput, bool) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.ProfileInput{}, false
	}
	in := service.ProfileInput{
		Sex:           req.Sex,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		DailyCalories: req.DailyCalories,
	}
	if req.BirthDate != "" {
		birth, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid birthDate, expected YYYY-MM-DD.")
			return service.ProfileInput{}, false
		}
		in.BirthDate = &birth
	}
	return in, true
}

// CreateProfile godoc
// @Summary Create the caller's profile
// @Description Stores body data. A zero dailyCalories is estimated from the body data.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfileRequest true "Body data"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Profile already exists"
// @Router /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 404 {object} gin.H "No profile yet"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Replace the caller's body data
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfileRequest true "Body data"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} gin.H "No profile yet"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}

	profile, err := h.profileService.UpdateMyProfile(c.Request.Context(), userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
