package handlers

import (
	"github.com/dhima/time-machine/internal/api/response"
	"github.com/dhima/time-machine/internal/logging"
	"github.com/dhima/time-machine/pkg/timemachine"
	"github.com/dhima/time-machine/pkg/travel"
	"github.com/gin-gonic/gin"
)

// MetricsHandler handles metrics requests.
type MetricsHandler struct {
	logger logging.Logger
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(logger logging.Logger) *MetricsHandler {
	return &MetricsHandler{logger: logger}
}

// OperationMetrics describes one interceptable entry point.
type OperationMetrics struct {
	Name      string `json:"name"`
	Shape     string `json:"shape"`
	Available bool   `json:"available"`
	Redirects uint64 `json:"redirects"`
}

// MetricsResponse represents the metrics response.
type MetricsResponse struct {
	Patched    bool               `json:"patched"`
	Travelling bool               `json:"travelling"`
	Depth      int                `json:"depth"`
	Operations []OperationMetrics `json:"operations"`
}

// Metrics godoc
// @Summary Interception metrics
// @Description Reports the interception state and how often each entry point was redirected
// @Tags Health
// @Produce json
// @Success 200 {object} MetricsResponse
// @Router /metrics [get]
func (h *MetricsHandler) Metrics(c *gin.Context) {
	stats := timemachine.Snapshot()
	descriptors := timemachine.Descriptors()

	metrics := MetricsResponse{
		Patched:    stats.Patched,
		Travelling: travel.IsTravelling(),
		Depth:      travel.Depth(),
		Operations: make([]OperationMetrics, 0, len(descriptors)),
	}
	for _, d := range descriptors {
		metrics.Operations = append(metrics.Operations, OperationMetrics{
			Name:      d.Name,
			Shape:     d.Shape.String(),
			Available: d.Available,
			Redirects: stats.Redirects[d.Name],
		})
	}

	response.OK(c, metrics)
}
