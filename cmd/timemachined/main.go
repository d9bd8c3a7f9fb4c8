// Command timemachined serves an HTTP API that moves this process's clock.
//
// The daemon is configured from the environment:
//
//	API_PORT                  listen port (default 8080)
//	ENVIRONMENT               production or development
//	LOG_LEVEL, LOG_ENCODING   zap level and json|console
//	CORS_ORIGINS              comma separated allowed origins
//	TIME_MACHINE_DESTINATION  travel here at startup
//	TIME_MACHINE_TICK         whether the startup travel ticks (default true)
//	TIME_MACHINE_NAIVE_MODE   mixed, utc, local or error
package main

import (
	"log"

	"github.com/dhima/time-machine/internal/api"
	"github.com/dhima/time-machine/internal/logging"
	"github.com/dhima/time-machine/pkg/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Environment, cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	srv, err := api.NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to start time machine daemon: %v", err)
	}
	if err := srv.Serve(); err != nil {
		log.Fatalf("time machine daemon stopped: %v", err)
	}
}
