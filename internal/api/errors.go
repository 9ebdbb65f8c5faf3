package api

import (
	"alcyxob/fittrack/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateLayout is the calendar day format of query parameters and start dates.
const dateLayout = "2006-01-02"

// respondWithError maps a service error to its HTTP status. Unexpected
// errors are attached to the context for the request logger and hidden
// from the client.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRuleViolation):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

// parseObjectIDParam reads a path parameter as an ObjectID.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseOptionalObjectID converts an optional hex id from a request body.
func parseOptionalObjectID(c *gin.Context, field string, hex *string) (*primitive.ObjectID, bool) {
	if hex == nil || *hex == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+field+" format.")
		return nil, false
	}
	return &id, true
}

// parseObjectIDs converts a list of hex ids from a request body.
func parseObjectIDs(c *gin.Context, field string, hexes []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid "+field+" format.")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// parseDateRange reads the from and to query parameters (YYYY-MM-DD).
// Missing to means today, missing from means the same day as to.
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	to = time.Now().UTC()
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		to = t
	}
	from = to
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD.")
			return time.Time{}, time.Time{}, false
		}
		from = t
	}
	return from, to, true
}
