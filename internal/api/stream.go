package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// streamDisasters pushes high and critical alerts to the client as
// server-sent events until the client goes away or the broadcaster closes.
func (h *Handler) streamDisasters(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "streaming unavailable"})
		return
	}

	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	if h.metrics != nil {
		h.metrics.StreamSubscribers.Inc()
		defer h.metrics.StreamSubscribers.Dec()
	}
	slog.Info("stream subscriber connected", "subscriber", id)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Content-Type", "text/event-stream")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case d, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("disaster", toFeature(d))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})

	slog.Info("stream subscriber disconnected", "subscriber", id)
}
