package routes

import (
	"net/http"
	"time"

	"barberqueue/config"
	"barberqueue/handlers"
	"barberqueue/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterQueueRoutes registers the walk-in queue endpoints.
func RegisterQueueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/queue/:providerId")
	{
		api.GET("", hb.GetQueueHandler)
		api.POST("/join", hb.JoinQueueHandler)
		api.POST("/leave", hb.LeaveQueueHandler)

		// Provider-side operations
		api.POST("/serve", hb.ServeNextHandler)
		api.PUT("", hb.ReplaceQueueHandler)
		api.DELETE("", hb.ClearQueueHandler)
	}

	r.GET("/api/customers/:customerId/status", hb.CustomerStatusHandler)
}

// RegisterProviderRoutes registers provider directory endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.RegisterProviderHandler)
		api.GET("/nearby", hb.NearbyProvidersHandler)
		api.GET("/id/:id", hb.GetProviderByIDHandler)
		api.PUT("/:id/services", hb.UpdateServicesHandler)
	}
}

// RegisterRealtimeRoutes registers the websocket subscription endpoint.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws/providers/:id", hb.SubscribeProviderHandler)
}

// RegisterAdminRoutes registers operator endpoints served by this process.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/sweep", hb.SweepNowHandler)
}

// RegisterHealthRoute registers a health-check endpoint backed by the last dependency ping.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		if !status.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": status})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterQueueRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
	if config.AppConfig.MetricsEnabled {
		RegisterMetricsRoute(r)
	}
}
