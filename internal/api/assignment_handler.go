package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/service"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentHandler exposes the plans and routines the caller follows.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type AssignRequest struct {
	Kind      domain.AssignmentKind `json:"kind" binding:"required,oneof=plan routine"`
	ItemID    string                `json:"itemId" binding:"required"`
	StartDate string                `json:"startDate"` // YYYY-MM-DD, defaults to today
}

// AssignmentResponse adds the derived projected end to the stored fields.
type AssignmentResponse struct {
	ID            string                  `json:"id"`
	Kind          domain.AssignmentKind   `json:"kind"`
	ItemID        string                  `json:"itemId"`
	ItemName      string                  `json:"itemName"`
	TotalDuration int                     `json:"totalDuration"`
	Position      int                     `json:"position"`
	Status        domain.AssignmentStatus `json:"status"`
	StartDate     string                  `json:"startDate"`
	EndDate       *string                 `json:"endDate,omitempty"`
	ProjectedEnd  string                  `json:"projectedEnd"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

func MapAssignmentToResponse(a *domain.Assignment) AssignmentResponse {
	if a == nil {
		return AssignmentResponse{}
	}
	resp := AssignmentResponse{
		ID:            a.ID.Hex(),
		Kind:          a.Kind,
		ItemID:        a.ItemID.Hex(),
		ItemName:      a.ItemName,
		TotalDuration: a.TotalDuration,
		Position:      a.Position,
		Status:        a.Status,
		StartDate:     a.StartDate.UTC().Format(dateLayout),
		ProjectedEnd:  a.ProjectedEnd().Format(dateLayout),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.EndDate != nil {
		end := a.EndDate.UTC().Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

func MapAssignmentsToResponse(assignments []domain.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = MapAssignmentToResponse(&assignments[i])
	}
	return responses
}

// Assign godoc
// @Summary Start a nutrition plan or routine
// @Description Fails with 409 when an active assignment of the same kind overlaps the dates.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body AssignRequest true "What to follow and from when"
// @Success 201 {object} AssignmentResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Profile or catalog item not found"
// @Failure 409 {object} gin.H "Overlapping active assignment"
// @Router /assignments [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid itemId format.")
		return
	}
	var start time.Time
	if req.StartDate != "" {
		start, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD.")
			return
		}
	}

	assignment, err := h.assignmentService.Assign(c.Request.Context(), userID, req.Kind, itemID, start)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapAssignmentToResponse(assignment))
}

// ListAssignments godoc
// @Summary List the caller's assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param kind query string false "plan or routine"
// @Param status query string false "ACTIVE, PAUSED, COMPLETED or CANCELLED"
// @Success 200 {array} AssignmentResponse
// @Router /assignments [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filter := repository.AssignmentFilter{
		Kind:   domain.AssignmentKind(c.Query("kind")),
		Status: domain.AssignmentStatus(c.Query("status")),
	}
	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAssignmentsToResponse(assignments))
}

// GetActive godoc
// @Summary Get the active assignment of a kind
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param kind query string true "plan or routine"
// @Success 200 {object} AssignmentResponse
// @Failure 404 {object} gin.H "Nothing active"
// @Router /assignments/active [get]
func (h *AssignmentHandler) GetActive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	kind := domain.AssignmentKind(c.Query("kind"))
	if !kind.Valid() {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'kind' must be plan or routine.")
		return
	}
	assignment, err := h.assignmentService.GetActive(c.Request.Context(), userID, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAssignmentToResponse(assignment))
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	h.act(c, h.assignmentService.GetAssignment)
}

// Advance godoc
// @Summary Move to the next day or week
// @Description No-op at the last day or week. The assignment must be active.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 403 {object} gin.H "Not the caller's assignment"
// @Failure 409 {object} gin.H "Assignment not active"
// @Router /assignments/{assignmentId}/advance [post]
func (h *AssignmentHandler) Advance(c *gin.Context) {
	h.act(c, h.assignmentService.Advance)
}

// Complete godoc
// @Summary Mark an assignment completed
// @Description Completing twice is a no-op. A cancelled assignment can not be completed.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 409 {object} gin.H "Already cancelled"
// @Router /assignments/{assignmentId}/complete [post]
func (h *AssignmentHandler) Complete(c *gin.Context) {
	h.act(c, h.assignmentService.Complete)
}

// Cancel godoc
// @Summary Cancel an assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} AssignmentResponse
// @Failure 409 {object} gin.H "Already completed"
// @Router /assignments/{assignmentId}/cancel [post]
func (h *AssignmentHandler) Cancel(c *gin.Context) {
	h.act(c, h.assignmentService.Cancel)
}

func (h *AssignmentHandler) Pause(c *gin.Context) {
	h.act(c, h.assignmentService.Pause)
}

func (h *AssignmentHandler) Resume(c *gin.Context) {
	h.act(c, h.assignmentService.Resume)
}

// act runs a per-assignment operation for the caller.
func (h *AssignmentHandler) act(c *gin.Context, op func(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := parseObjectIDParam(c, "assignmentId")
	if !ok {
		return
	}
	assignment, err := op(c.Request.Context(), userID, assignmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAssignmentToResponse(assignment))
}
