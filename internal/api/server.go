package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhima/time-machine/internal/api/handlers"
	"github.com/dhima/time-machine/internal/api/middleware"
	"github.com/dhima/time-machine/internal/api/response"
	"github.com/dhima/time-machine/internal/control"
	"github.com/dhima/time-machine/internal/logging"
	"github.com/dhima/time-machine/pkg/config"
	"github.com/dhima/time-machine/pkg/timemachine"
	"github.com/dhima/time-machine/pkg/travel"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server orchestrates HTTP routing and dependencies for the time control daemon.
type Server struct {
	config config.App
	logger logging.Logger
	router *gin.Engine

	clock *control.Service
}

// NewServer wires the daemon dependencies together. When cfg names a
// destination the daemon starts travelling there before it serves.
func NewServer(cfg config.App, logger logging.Logger) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	timemachine.SetLogger(logger.Zap())
	travel.SetLogger(logger.Zap())
	travel.SetNaiveMode(cfg.NaiveMode)

	server := &Server{
		config: cfg,
		logger: logger,
		clock:  control.NewService(),
	}

	if cfg.Destination != "" {
		tick := cfg.Tick
		status, err := server.clock.Travel(cfg.Destination, &tick)
		if err != nil {
			return nil, err
		}
		logger.Info("travelling to startup destination",
			zap.String("destination", cfg.Destination),
			zap.Bool("tick", tick),
			zap.Time("now", status.Now),
		)
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the Gin router with middleware and routes.
func (s *Server) setupRouter() {
	router := gin.New()
	zapLogger := s.logger.Zap()

	// Recovery first so it catches panics from the rest of the chain.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))
	router.Use(middleware.VirtualTime())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", middleware.VirtualTimeHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.NewHealthHandler(s.logger).Health)
	router.GET("/metrics", handlers.NewMetricsHandler(s.logger).Metrics)

	v1 := router.Group("/api/v1")
	{
		clockHandler := handlers.NewClockHandler(s.logger, s.clock)
		clk := v1.Group("/clock")
		{
			clk.GET("", clockHandler.Status)
			clk.POST("/travel", clockHandler.Travel)
			clk.DELETE("/travel", clockHandler.Stop)
			clk.POST("/shift", clockHandler.Shift)
			clk.POST("/cron", clockHandler.Cron)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	s.router = router
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close ends any travel the daemon started and flushes the logger.
func (s *Server) Close() error {
	if err := s.clock.Stop(); err != nil {
		s.logger.Error("failed to stop travelling", zap.Error(err))
		return err
	}

	if err := s.logger.Sync(); err != nil {
		// Ignore sync errors on stdout/stderr
		if err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: invalid argument" {
			return err
		}
	}
	return nil
}

// Serve starts the HTTP server with graceful shutdown support.
func (s *Server) Serve() error {
	addr := ":" + s.config.APIPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting time machine daemon",
			zap.String("address", addr),
			zap.String("environment", s.config.Environment),
			zap.String("naive_mode", s.config.NaiveMode.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-quit:
	case err := <-errCh:
		s.logger.Error("failed to start server", zap.Error(err))
		_ = s.Close()
		return err
	}
	s.logger.Info("shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	if err := s.Close(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
