package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/response"
)

// mapError translates use-case errors into HTTP responses.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrCalendarNotFound), errors.Is(err, schedule.ErrEventNotFound):
		response.NotFound(c, err)
	case errors.Is(err, schedule.ErrUnauthenticated):
		response.Unauthorized(c)
	case errors.Is(err, schedule.ErrDeleted):
		response.ErrorStatus(c, http.StatusConflict, response.ErrorCodeConflict, err)
	}
	if c.Writer.Written() {
		return
	}

	switch schedule.KindOf(err) {
	case schedule.KindPrecondition, schedule.KindNormalization:
		response.Error(c, err, nil)
	case schedule.KindTransport, schedule.KindItem:
		response.ErrorStatus(c, http.StatusBadGateway, response.ErrorCodeUpstreamFailure, err)
	default:
		response.InternalError(c, err)
	}
}
