package httpserver

import (
	"net/http"

	"o365-calendar/internal/model"
	"o365-calendar/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "o365-calendar"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once the calendar list has been fetched at least
// once.
// @Summary Readiness Check
// @Description Check if the calendar list has been loaded
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "Calendars not loaded yet"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	var calendars int
	_ = srv.store.With(func(s *model.Schedule) error {
		calendars = len(s.Calendars)
		return nil
	})

	status, code := "ready", http.StatusOK
	if calendars == 0 {
		status, code = "warming", http.StatusServiceUnavailable
	}
	c.JSON(code, response.NewOKResp(gin.H{
		"status":    status,
		"calendars": calendars,
		"version":   HealthVersion,
		"service":   ServiceName,
	}))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
