package handlers

import (
	"github.com/dhima/time-machine/internal/api/response"
	"github.com/dhima/time-machine/internal/logging"
	"github.com/dhima/time-machine/pkg/travel"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger logging.Logger
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger logging.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	Travelling bool   `json:"travelling"`
}

// Health godoc
// @Summary Health check
// @Description Reports that the daemon is up and whether its clock is virtual
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, HealthResponse{
		Status:     "ok",
		Service:    "time-machine",
		Version:    "1.0.0",
		Travelling: travel.IsTravelling(),
	})
}
