package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/internal/infrastructure/monitor"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
)

type HealthReporter interface {
	GetStatus() monitor.Status
	Refresh() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor HealthReporter
}

func NewHealthHandler(mon HealthReporter, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Services  monitor.Status `json:"services"`
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	if status.LastCheck.IsZero() {
		status = h.monitor.Refresh()
	}

	payload := healthResponse{Status: "ok", Timestamp: time.Now().UTC(), Services: status}
	if status.Healthy() {
		h.respondJSON(ctx, http.StatusOK, payload)
		return
	}
	payload.Status = "degraded"
	h.respondJSON(ctx, http.StatusServiceUnavailable, payload)
}
