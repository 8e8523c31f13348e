package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/datemath"
	"o365-calendar/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	rateLimitPerMin int

	// Schedule domain
	scheduleUC schedule.UseCase
	store      *schedule.Store
	dateMath   *datemath.Parser
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	RateLimitPerMin int

	// Schedule domain
	ScheduleUseCase schedule.UseCase
	Store           *schedule.Store
	DateMath        *datemath.Parser
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		rateLimitPerMin: cfg.RateLimitPerMin,
		scheduleUC:      cfg.ScheduleUseCase,
		store:           cfg.Store,
		dateMath:        cfg.DateMath,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = 10 * time.Second
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.scheduleUC == nil {
		return errors.New("schedule use case is required")
	}
	if srv.store == nil {
		return errors.New("schedule store is required")
	}
	return nil
}
