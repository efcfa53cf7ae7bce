package handlers

import (
	"barberqueue/services/provider"
	"barberqueue/services/queue"
	"barberqueue/services/realtime"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Queue endpoints
	JoinQueueHandler      gin.HandlerFunc
	LeaveQueueHandler     gin.HandlerFunc
	ServeNextHandler      gin.HandlerFunc
	ReplaceQueueHandler   gin.HandlerFunc
	ClearQueueHandler     gin.HandlerFunc
	GetQueueHandler       gin.HandlerFunc
	CustomerStatusHandler gin.HandlerFunc

	// Provider endpoints
	RegisterProviderHandler gin.HandlerFunc
	UpdateServicesHandler   gin.HandlerFunc
	GetProviderByIDHandler  gin.HandlerFunc
	NearbyProvidersHandler  gin.HandlerFunc

	// Realtime
	SubscribeProviderHandler gin.HandlerFunc

	// Admin
	SweepNowHandler gin.HandlerFunc
}

// NewHandlerBundle wires handlers to their services. hub may be nil when
// websocket publishing is disabled; sweeper may be nil when no sweeper runs.
func NewHandlerBundle(queueSvc queue.QueueService, providerSvc provider.ProviderService, hub *realtime.Hub, sweeper Sweeper) *HandlerBundle {
	qh := NewQueueHandler(queueSvc)
	ph := NewProviderHandler(providerSvc)
	rh := &RealtimeHandler{Hub: hub, Queue: queueSvc}
	ah := &AdminHandler{Sweeper: sweeper}

	return &HandlerBundle{
		JoinQueueHandler:      qh.JoinQueueHandler,
		LeaveQueueHandler:     qh.LeaveQueueHandler,
		ServeNextHandler:      qh.ServeNextHandler,
		ReplaceQueueHandler:   qh.ReplaceQueueHandler,
		ClearQueueHandler:     qh.ClearQueueHandler,
		GetQueueHandler:       qh.GetQueueHandler,
		CustomerStatusHandler: qh.CustomerStatusHandler,

		RegisterProviderHandler: ph.RegisterProviderHandler,
		UpdateServicesHandler:   ph.UpdateServicesHandler,
		GetProviderByIDHandler:  ph.GetProviderByIDHandler,
		NearbyProvidersHandler:  ph.NearbyProvidersHandler,

		SubscribeProviderHandler: rh.SubscribeProviderHandler,

		SweepNowHandler: ah.SweepNowHandler,
	}
}
