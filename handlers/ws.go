package handlers

import (
	"net/http"

	"barberqueue/services/queue"
	"barberqueue/services/realtime"

	"github.com/gin-gonic/gin"
)

type RealtimeHandler struct {
	Hub   *realtime.Hub
	Queue queue.QueueService
}

// SubscribeProviderHandler handles GET /ws/providers/:id. Unknown providers
// are rejected before the upgrade.
func (h *RealtimeHandler) SubscribeProviderHandler(c *gin.Context) {
	providerID := c.Param("id")
	if _, err := h.Queue.GetQueue(c.Request.Context(), providerID); err != nil {
		respondError(c, err)
		return
	}
	if h.Hub == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "websocket updates are disabled"})
		return
	}
	h.Hub.ServeWS(c.Writer, c.Request, providerID)
}
