package command

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barberqueue/config"
	"barberqueue/cron"
	"barberqueue/database"
	"barberqueue/handlers"
	"barberqueue/middleware"
	"barberqueue/routes"
	"barberqueue/services/provider"
	"barberqueue/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type Serve struct {
	Logger *zap.Logger
}

func (cmd Serve) Command(ctx context.Context) *cobra.Command {
	var withWorker bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "run the queue API, sweeper and realtime hub",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.main(ctx, withWorker)
		},
	}
	c.Flags().BoolVar(&withWorker, "worker", true, "also drain the notification task queue when NOTIFY_DISPATCH=asynq")
	return c
}

func (cmd Serve) main(ctx context.Context, withWorker bool) error {
	logger := cmd.Logger

	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.close(shutdownCtx)
	}()

	providerService, err := provider.NewDefaultProviderService(a.repo, a.queue, logger)
	if err != nil {
		return err
	}

	sweeper := cron.NewSweeper(a.queue, a.dispatcher, logger)
	if err := sweeper.Start(config.AppConfig.SweepSchedule); err != nil {
		return err
	}
	defer func() {
		<-sweeper.Stop().Done()
		logger.Info("Queue sweeper stopped")
	}()

	if a.usesAsynq() && withWorker {
		worker := cron.NewNotificationWorker(a.taskRedisOpt(), a.notifier, logger)
		worker.Start()
		defer worker.Shutdown()
	}

	utils.StartHealthMonitor(ctx, a.redis, database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, handlers.NewHandlerBundle(a.queue, providerService, a.hub, sweeper))

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
