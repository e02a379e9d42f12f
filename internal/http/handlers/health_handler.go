package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports liveness and store connectivity.
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp" example:"2024-05-01T12:00:00.000Z"`
	Database  string `json:"database" enums:"connected,disconnected" example:"connected"`
}

// Health godoc
// @ID          health
// @Summary     Health check
// @Description Always 200 while the process serves requests; database reflects a live store ping.
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	db := "connected"
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.opt.PingTimeout)
	defer cancel()
	if h.store == nil || h.store.Ping(ctx) != nil {
		db = "disconnected"
	}
	ok(c, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Database:  db,
	})
}
