package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"o365-calendar/config"
	_ "o365-calendar/docs" // Swagger docs
	"o365-calendar/internal/httpserver"
	"o365-calendar/internal/model"
	"o365-calendar/internal/schedule"
	"o365-calendar/internal/schedule/usecase"
	"o365-calendar/pkg/datemath"
	"o365-calendar/pkg/log"
	"o365-calendar/pkg/outlook"
)

// @title       O365 Calendar API
// @description Calendar and event cache over the Outlook REST and Microsoft Graph APIs.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting O365 calendar service...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Auth mode: %s", cfg.Outlook.AuthMode)

	// 3. Outlook connection
	conn, err := newConnection(ctx, cfg.Outlook)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Outlook connection: ", err)
		return
	}
	client := outlook.NewClient(conn, outlook.Options{
		VerifyTLS:         cfg.Outlook.VerifyTLS,
		Timeout:           cfg.Outlook.Timeout,
		RequestsPerSecond: cfg.Outlook.RequestsPerSecond,
		Burst:             cfg.Outlook.Burst,
	})
	directory := outlook.NewDirectory(client, cfg.Outlook.DirectoryCacheSize, cfg.Outlook.DirectoryCacheTTL)

	// 4. Schedule domain
	scheduleUC := usecase.New(logger, client, directory)
	store := schedule.NewStore(nil)

	dateMathParser, err := datemath.NewParser(cfg.Sync.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Sync.Timezone, err)
		dateMathParser, _ = datemath.NewParser("UTC")
	}

	refresh := func(ctx context.Context) {
		w, err := syncWindow(dateMathParser, cfg.Sync, time.Now())
		if err != nil {
			logger.Warnf(ctx, "Invalid sync window, using defaults: %v", err)
			w = schedule.DefaultEventWindow(time.Now())
		}
		err = store.With(func(s *model.Schedule) error {
			out, err := scheduleUC.RefreshAll(ctx, s, w)
			logger.Infof(ctx, "Refresh: %d replaced, %d appended, %d skipped", out.Replaced, out.Appended, len(out.Skipped))
			return err
		})
		if err != nil {
			logger.Warnf(ctx, "Refresh failed: %v", err)
		}
	}
	refresh(ctx)

	// 5. Periodic refresh
	if cfg.Sync.Interval != "" {
		c := cron.New(cron.WithSeconds())
		if _, err := c.AddFunc(cfg.Sync.Interval, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()
			refresh(jobCtx)
		}); err != nil {
			logger.Error(ctx, "Invalid sync interval: ", err)
			return
		}
		c.Start()
		defer func() {
			<-c.Stop().Done()
		}()
		logger.Infof(ctx, "Periodic refresh scheduled: %s", cfg.Sync.Interval)
	} else {
		logger.Warn(ctx, "Periodic refresh disabled: sync.interval is empty")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		RateLimitPerMin: cfg.RateLimit.PerMin,
		ScheduleUseCase: scheduleUC,
		Store:           store,
		DateMath:        dateMathParser,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// newConnection builds the connection for the configured auth mode. In oauth
// mode a configured basic credential is kept as the fallback.
func newConnection(ctx context.Context, cfg config.OutlookConfig) (*outlook.Connection, error) {
	if cfg.AuthMode == outlook.ModeLegacyBasic {
		return outlook.NewBasicConnection(cfg.Username, cfg.Password), nil
	}

	oauthCfg := outlook.OAuthConfig(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, "")
	conn, err := outlook.NewConnectionFromTokenFile(ctx, oauthCfg, cfg.TokenPath)
	if err != nil {
		if cfg.Username == "" || cfg.Password == "" {
			return nil, fmt.Errorf("%w (run `go run scripts/o365-auth/main.go` to generate %s)", err, cfg.TokenPath)
		}
		return outlook.NewBasicConnection(cfg.Username, cfg.Password), nil
	}
	if cfg.Username != "" && cfg.Password != "" {
		conn = conn.WithBasicCredential(cfg.Username, cfg.Password)
	}
	return conn, nil
}

func syncWindow(p *datemath.Parser, cfg config.SyncConfig, now time.Time) (schedule.EventWindow, error) {
	r, err := p.ParseRange(cfg.EventWindowStart, cfg.EventWindowEnd, now, outlook.DefaultEventWindow*time.Hour)
	if err != nil {
		return schedule.EventWindow{}, err
	}
	return schedule.EventWindow{Start: r.Start, End: r.End, Count: cfg.EventCount}, nil
}
