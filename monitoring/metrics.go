package monitoring

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queueLength = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "barberqueue_queue_length",
			Help: "Current queue length per provider",
		},
		[]string{"provider_id"},
	)

	queueOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barberqueue_queue_operations_total",
			Help: "Total queue operations by outcome",
		},
		[]string{"operation", "status"},
	)

	notificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barberqueue_notifications_total",
			Help: "Head-of-queue notifications by channel and outcome",
		},
		[]string{"channel", "status"},
	)

	sweepRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barberqueue_sweep_providers_total",
			Help: "Providers visited by the notification sweeper by outcome",
		},
		[]string{"outcome"},
	)

	publishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barberqueue_publish_failures_total",
			Help: "Realtime publish failures per transport",
		},
		[]string{"transport"},
	)

	wsSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barberqueue_ws_subscribers",
			Help: "Open websocket subscriptions",
		},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barberqueue_goroutines",
			Help: "Goroutines at last scrape of the sweeper",
		},
	)
)

// TrackQueueOperation counts one coordinator call; status is "ok" or an error kind.
func TrackQueueOperation(operation, status string) {
	queueOperations.WithLabelValues(operation, status).Inc()
}

func SetQueueLength(providerID string, n int) {
	queueLength.WithLabelValues(providerID).Set(float64(n))
}

func TrackNotification(channel, status string) {
	notificationsSent.WithLabelValues(channel, status).Inc()
}

func TrackSweep(outcome string) {
	sweepRuns.WithLabelValues(outcome).Inc()
}

func TrackPublishFailure(transport string) {
	publishFailures.WithLabelValues(transport).Inc()
}

func SetSubscribers(n int) {
	wsSubscribers.Set(float64(n))
}

func CollectRuntime() {
	goroutineCount.Set(float64(runtime.NumGoroutine()))
}
