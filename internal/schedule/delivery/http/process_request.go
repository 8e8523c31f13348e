package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"o365-calendar/internal/schedule"
)

var errMissingID = errors.New("id path parameter is required")

// processIDParam reads the :id path parameter.
func processIDParam(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", errMissingID
	}
	return id, nil
}

// processCreateReq binds and validates the create event request body.
func (h *handler) processCreateReq(c *gin.Context) (schedule.EventInput, error) {
	var req eventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return schedule.EventInput{}, err
	}
	if err := req.validateCreate(); err != nil {
		return schedule.EventInput{}, err
	}
	return req.toInput(h.now())
}

// processUpdateReq binds and validates the update event request body.
func (h *handler) processUpdateReq(c *gin.Context) (schedule.EventInput, error) {
	var req eventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return schedule.EventInput{}, err
	}
	if err := req.validate(); err != nil {
		return schedule.EventInput{}, err
	}
	return req.toInput(h.now())
}

// processWindowReq binds the from/to/top query parameters.
func (h *handler) processWindowReq(c *gin.Context) (schedule.EventWindow, error) {
	var req windowReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return schedule.EventWindow{}, err
	}
	return req.toWindow(h.dateMath, h.now())
}
