package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/habitlog/internal/engine"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/validation"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status, kind := classify(err)
	resp := errorResponse{Error: kind, Message: err.Error()}

	if status == http.StatusBadRequest {
		for _, fe := range validation.Fields(err) {
			if resp.Fields == nil {
				resp.Fields = map[string]string{}
			}
			resp.Fields[fe.Field] = fe.Message
		}
	}
	if status == http.StatusInternalServerError {
		requestLogger(c).Error("request failed", "error", err)
		resp.Message = "internal server error"
	}

	c.AbortWithStatusJSON(status, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalidHabit),
		errors.Is(err, validation.ErrInvalidReport),
		errors.Is(err, engine.ErrInvalidCandidate),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, tracker.ErrOwnerRequired):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, tracker.ErrDuplicateDay), errors.Is(err, storage.ErrDuplicate):
		return http.StatusConflict, "conflict"
	default:
		logger.Debug("unclassified error", "error", err)
		return http.StatusInternalServerError, "internal_error"
	}
}
