package http

import (
	"o365-calendar/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods. Every route
// is rate limited per client.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	calendars := rg.Group("/calendars", mw.RateLimit())
	{
		calendars.GET("", h.ListCalendars)
		calendars.POST("/refresh", h.RefreshCalendars)
		calendars.GET("/:id/events", h.ListEvents)
		calendars.GET("/:id/events.ics", h.ExportEvents)
		calendars.POST("/:id/events", h.CreateEvent)
		calendars.POST("/:id/events/refresh", h.RefreshEvents)
	}

	events := rg.Group("/events", mw.RateLimit())
	{
		events.PATCH("/:id", h.UpdateEvent)
		events.DELETE("/:id", h.DeleteEvent)
	}
}
