package handlers

import (
	"net/http"

	"barberqueue/models"
	"barberqueue/services/queue"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QueueHandler struct {
	Service queue.QueueService
}

func NewQueueHandler(svc queue.QueueService) *QueueHandler {
	return &QueueHandler{Service: svc}
}

// JoinQueueHandler handles POST /api/queue/:providerId/join.
func (h *QueueHandler) JoinQueueHandler(c *gin.Context) {
	var req models.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ProviderID = c.Param("providerId")

	res, err := h.Service.JoinQueue(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// LeaveQueueHandler handles POST /api/queue/:providerId/leave.
func (h *QueueHandler) LeaveQueueHandler(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	res, err := h.Service.LeaveQueue(c.Request.Context(), c.Param("providerId"), req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ServeNextHandler handles POST /api/queue/:providerId/serve. An empty queue
// answers 200 with "served": null.
func (h *QueueHandler) ServeNextHandler(c *gin.Context) {
	res, err := h.Service.ServeNext(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if res.Served != nil {
		getLogger(c).Info("Served customer",
			zap.String("providerId", c.Param("providerId")),
			zap.String("customerId", res.Served.CustomerID))
	}
	c.JSON(http.StatusOK, res)
}

// ReplaceQueueHandler handles PUT /api/queue/:providerId.
func (h *QueueHandler) ReplaceQueueHandler(c *gin.Context) {
	var req struct {
		Queue []models.QueueEntry `json:"queue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	res, err := h.Service.ReplaceQueue(c.Request.Context(), c.Param("providerId"), req.Queue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ClearQueueHandler handles DELETE /api/queue/:providerId.
func (h *QueueHandler) ClearQueueHandler(c *gin.Context) {
	res, err := h.Service.ClearQueue(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetQueueHandler handles GET /api/queue/:providerId.
func (h *QueueHandler) GetQueueHandler(c *gin.Context) {
	view, err := h.Service.GetQueue(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CustomerStatusHandler handles GET /api/customers/:customerId/status.
func (h *QueueHandler) CustomerStatusHandler(c *gin.Context) {
	status, err := h.Service.GetCustomerStatus(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
