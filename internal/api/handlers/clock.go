package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dhima/time-machine/internal/api/response"
	"github.com/dhima/time-machine/internal/control"
	"github.com/dhima/time-machine/internal/logging"
	"github.com/dhima/time-machine/pkg/travel"
	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// ClockService is the control surface the clock handler drives.
type ClockService interface {
	Status() control.Status
	Travel(dest any, tick *bool) (control.Status, error)
	Shift(delta any) (control.Status, error)
	Cron(cfg travel.CronConfig) (control.Status, error)
	Stop() error
}

// ClockHandler handles virtual clock requests.
type ClockHandler struct {
	logger  logging.Logger
	service ClockService
}

// NewClockHandler creates a new clock handler.
func NewClockHandler(logger logging.Logger, service ClockService) *ClockHandler {
	return &ClockHandler{
		logger:  logger.With(zap.String("handler", "clock")),
		service: service,
	}
}

// TravelRequest sends the clock to a destination.
type TravelRequest struct {
	Destination any   `json:"destination"`
	Tick        *bool `json:"tick,omitempty"`
}

// ShiftRequest moves the clock by either seconds or a Go duration string.
type ShiftRequest struct {
	Seconds  *float64 `json:"seconds,omitempty"`
	Duration string   `json:"duration,omitempty"`
}

// Status godoc
// @Summary Get clock status
// @Description Reports whether the process is travelling, the virtual and real time, and the traveller driven by the API
// @Tags Clock
// @Produce json
// @Success 200 {object} control.Status
// @Router /api/v1/clock [get]
func (h *ClockHandler) Status(c *gin.Context) {
	response.OK(c, h.service.Status())
}

// Travel godoc
// @Summary Travel to a destination
// @Description Starts travelling to destination, or moves the running traveller there. Destination is a date string or Unix seconds.
// @Tags Clock
// @Accept json
// @Produce json
// @Param request body TravelRequest true "Destination and tick"
// @Success 200 {object} control.Status
// @Failure 400 {object} response.ErrorResponse "Invalid destination"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/clock/travel [post]
func (h *ClockHandler) Travel(c *gin.Context) {
	var req TravelRequest
	if !h.bind(c, travelRequestSchema, &req) {
		return
	}

	status, err := h.service.Travel(req.Destination, req.Tick)
	if h.handleServiceError(c, err, "travel") {
		return
	}

	h.logger.Info("clock travelled",
		zap.Any("destination", req.Destination),
		zap.Time("now", status.Now),
		zap.String("traveller_id", status.TravellerID),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.OK(c, status)
}

// Shift godoc
// @Summary Shift the virtual clock
// @Description Moves the running traveller by seconds or by a Go duration string such as "1h30m"
// @Tags Clock
// @Accept json
// @Produce json
// @Param request body ShiftRequest true "Exactly one of seconds or duration"
// @Success 200 {object} control.Status
// @Failure 400 {object} response.ErrorResponse "Invalid delta"
// @Failure 409 {object} response.ErrorResponse "Not travelling"
// @Router /api/v1/clock/shift [post]
func (h *ClockHandler) Shift(c *gin.Context) {
	var req ShiftRequest
	if !h.bind(c, shiftRequestSchema, &req) {
		return
	}

	var delta any
	if req.Seconds != nil {
		delta = *req.Seconds
	} else {
		d, err := time.ParseDuration(req.Duration)
		if err != nil {
			response.ValidationErrors(c, []response.ValidationError{{Field: "duration", Message: err.Error()}})
			return
		}
		delta = d
	}

	status, err := h.service.Shift(delta)
	if h.handleServiceError(c, err, "shift") {
		return
	}

	h.logger.Info("clock shifted",
		zap.Any("delta", delta),
		zap.Time("now", status.Now),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.OK(c, status)
}

// Cron godoc
// @Summary Travel to the next cron fire time
// @Description Travels to the first time the cron expression fires after the current, possibly virtual, time
// @Tags Clock
// @Accept json
// @Produce json
// @Param request body travel.CronConfig true "Cron expression and optional IANA timezone"
// @Success 200 {object} control.Status
// @Failure 400 {object} response.ErrorResponse "Invalid cron expression or timezone"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/clock/cron [post]
func (h *ClockHandler) Cron(c *gin.Context) {
	body, ok := h.validate(c, cronRequestSchema)
	if !ok {
		return
	}
	cfg, err := travel.ParseCronConfig(body)
	if err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	status, err := h.service.Cron(*cfg)
	if h.handleServiceError(c, err, "cron") {
		return
	}

	h.logger.Info("clock moved to cron fire time",
		zap.String("cron", cfg.Cron),
		zap.String("timezone", cfg.Timezone),
		zap.Time("now", status.Now),
		zap.String("request_id", response.GetRequestID(c)),
	)
	response.OK(c, status)
}

// Stop godoc
// @Summary Stop travelling
// @Description Ends the travel started through the API. Stopping when not travelling does nothing.
// @Tags Clock
// @Success 204 "Stopped"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /api/v1/clock/travel [delete]
func (h *ClockHandler) Stop(c *gin.Context) {
	if h.handleServiceError(c, h.service.Stop(), "stop") {
		return
	}
	h.logger.Info("clock travel stopped", zap.String("request_id", response.GetRequestID(c)))
	response.NoContent(c)
}

// bind validates the request body against schema and decodes it into dst.
func (h *ClockHandler) bind(c *gin.Context, schema *gojsonschema.Schema, dst any) bool {
	body, ok := h.validate(c, schema)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return false
	}
	return true
}

func (h *ClockHandler) validate(c *gin.Context, schema *gojsonschema.Schema) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "invalid request body", err.Error())
		return nil, false
	}

	errs, err := validateBody(schema, body)
	if err != nil {
		h.logger.Warn("invalid request body",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.BadRequest(c, "invalid request body", err.Error())
		return nil, false
	}
	if len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return nil, false
	}
	return body, true
}

func (h *ClockHandler) handleServiceError(c *gin.Context, err error, operation string) bool {
	if err == nil {
		return false
	}

	var validationErr control.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, "validation failed", validationErr.Error())
	case errors.Is(err, control.ErrNotTravelling):
		response.Conflict(c, "not travelling", "start a travel before "+operation)
	default:
		h.logger.Error(operation+" failed",
			zap.Error(err),
			zap.String("request_id", response.GetRequestID(c)),
		)
		response.InternalServerError(c, "internal server error")
	}
	return true
}
