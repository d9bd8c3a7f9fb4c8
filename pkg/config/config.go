package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhima/time-machine/pkg/travel"
)

// App holds runtime configuration of the time control daemon.
type App struct {
	APIPort     string
	Environment string
	LogLevel    string
	LogEncoding string
	CORSOrigins []string

	// NaiveMode places destination strings without a zone.
	NaiveMode travel.NaiveMode
	// Tick makes travels started by the daemon advance with real time.
	Tick bool
	// Destination, when set, is travelled to at startup.
	Destination string
}

// FromEnv loads the application configuration from environment variables.
func FromEnv() (App, error) {
	naiveMode, err := travel.ParseNaiveMode(getEnv("TIME_MACHINE_NAIVE_MODE", "mixed"))
	if err != nil {
		return App{}, fmt.Errorf("TIME_MACHINE_NAIVE_MODE: %w", err)
	}

	tick, err := strconv.ParseBool(getEnv("TIME_MACHINE_TICK", "true"))
	if err != nil {
		return App{}, fmt.Errorf("TIME_MACHINE_TICK: %w", err)
	}

	encoding := getEnv("LOG_ENCODING", "json")
	if encoding != "json" && encoding != "console" {
		return App{}, fmt.Errorf("LOG_ENCODING: unsupported encoding %q", encoding)
	}

	return App{
		APIPort:     getEnv("API_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "production"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: encoding,
		CORSOrigins: getCORSOrigins(),
		NaiveMode:   naiveMode,
		Tick:        tick,
		Destination: os.Getenv("TIME_MACHINE_DESTINATION"),
	}, nil
}

// getEnv returns the value of key, or fallback when it is unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getCORSOrigins splits CORS_ORIGINS on commas. Unset means any origin.
func getCORSOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	origins := []string{}
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
