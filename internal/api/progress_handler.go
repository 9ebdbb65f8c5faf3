package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type ProgressRequest struct {
	RecordedAt     time.Time `json:"recordedAt"` // RFC 3339, defaults to now
	WeightKg       float64   `json:"weightKg" binding:"required,gt=0"`
	BodyFatPercent *float64  `json:"bodyFatPercent" binding:"omitempty,gte=0,lte=100"`
	Notes          string    `json:"notes"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"` // e.g. image/jpeg
}

type PhotoConfirmRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	ContentType string `json:"contentType"`
}

// ProgressResponse adds a photo flag since the object key stays internal.
type ProgressResponse struct {
	domain.ProgressEntry
	HasPhoto bool `json:"hasPhoto"`
}

func MapProgressToResponse(e *domain.ProgressEntry) ProgressResponse {
	if e == nil {
		return ProgressResponse{}
	}
	return ProgressResponse{ProgressEntry: *e, HasPhoto: e.HasPhoto()}
}

// CreateEntry godoc
// @Summary Record a body measurement
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body ProgressRequest true "Measurement"
// @Success 201 {object} ProgressResponse
// @Router /progress [post]
func (h *ProgressHandler) CreateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	entry, err := h.progressService.CreateEntry(c.Request.Context(), userID, service.ProgressInput{
		RecordedAt:     req.RecordedAt,
		WeightKg:       req.WeightKg,
		BodyFatPercent: req.BodyFatPercent,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgressToResponse(entry))
}

func (h *ProgressHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.progressService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	responses := make([]ProgressResponse, len(entries))
	for i := range entries {
		responses[i] = MapProgressToResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *ProgressHandler) GetEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseObjectIDParam(c, "entryId")
	if !ok {
		return
	}
	entry, err := h.progressService.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgressToResponse(entry))
}

// RequestPhotoUploadURL godoc
// @Summary Get a presigned URL to upload a progress photo
// @Description The client PUTs the image to uploadUrl with the same Content-Type, then confirms with objectKey.
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entryId path string true "Progress entry ID"
// @Param request body PhotoUploadRequest true "Content type of the image"
// @Success 200 {object} service.UploadURLResponse
// @Router /progress/{entryId}/photo/upload-url [post]
func (h *ProgressHandler) RequestPhotoUploadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseObjectIDParam(c, "entryId")
	if !ok {
		return
	}
	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	resp, err := h.progressService.RequestPhotoUploadURL(c.Request.Context(), userID, entryID, req.ContentType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPhoto godoc
// @Summary Attach an uploaded photo to the entry
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entryId path string true "Progress entry ID"
// @Param request body PhotoConfirmRequest true "Object key returned with the upload URL"
// @Success 200 {object} ProgressResponse
// @Failure 409 {object} gin.H "Object not uploaded yet"
// @Router /progress/{entryId}/photo/confirm [post]
func (h *ProgressHandler) ConfirmPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseObjectIDParam(c, "entryId")
	if !ok {
		return
	}
	var req PhotoConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	entry, err := h.progressService.ConfirmPhoto(c.Request.Context(), userID, entryID, req.ObjectKey, req.ContentType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgressToResponse(entry))
}

// GetPhotoDownloadURL godoc
// @Summary Get a presigned URL to view the photo
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param entryId path string true "Progress entry ID"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 404 {object} gin.H "No photo"
// @Router /progress/{entryId}/photo [get]
func (h *ProgressHandler) GetPhotoDownloadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := parseObjectIDParam(c, "entryId")
	if !ok {
		return
	}
	url, err := h.progressService.GetPhotoDownloadURL(c.Request.Context(), userID, entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
