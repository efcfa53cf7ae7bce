package handlers

import (
	"context"
	"net/http"

	"barberqueue/cron"

	"github.com/gin-gonic/gin"
)

// Sweeper runs one notification pass against the in-process queues.
type Sweeper interface {
	SweepOnce(ctx context.Context) cron.SweepReport
}

type AdminHandler struct {
	Sweeper Sweeper
}

// SweepNowHandler handles POST /api/admin/sweep. The pass runs on the
// server's own coordinator, so heads already notified are not notified again.
func (h *AdminHandler) SweepNowHandler(c *gin.Context) {
	if h.Sweeper == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sweeper is not running"})
		return
	}
	report := h.Sweeper.SweepOnce(c.Request.Context())
	getLogger(c).Sugar().Infof("Manual sweep: scanned=%d notified=%d skipped=%d", report.Scanned, report.Notified, report.Skipped)
	c.JSON(http.StatusOK, report)
}
