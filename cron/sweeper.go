package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barberqueue/models"
	"barberqueue/monitoring"
	"barberqueue/services/notification"
	"barberqueue/services/queue"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSweepSchedule runs the sweep once a minute.
const DefaultSweepSchedule = "@every 1m"

const sweepTimeout = 50 * time.Second

// SweepReport summarises one pass over all providers.
type SweepReport struct {
	Scanned      int `json:"scanned"`
	Skipped      int `json:"skipped"`
	Notified     int `json:"notified"`
	SaveFailures int `json:"saveFailures"`
}

// Sweeper periodically notifies the customer at the head of each queue once.
type Sweeper struct {
	queue      queue.HeadNotifier
	dispatcher notification.Dispatcher
	logger     *zap.Logger
	cron       *robfig.Cron
}

func NewSweeper(q queue.HeadNotifier, d notification.Dispatcher, logger *zap.Logger) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{queue: q, dispatcher: d, logger: logger}
}

// SweepOnce visits every provider. Each provider is handled under its own
// lock, so a sweep never interleaves with a join or serve on that provider.
func (s *Sweeper) SweepOnce(ctx context.Context) SweepReport {
	var report SweepReport
	dispatch := func(head models.HeadOfQueue) {
		s.logger.Info("Customer is next in line",
			zap.String("providerId", head.Provider.ID),
			zap.String("customerId", head.Entry.CustomerID))
		s.dispatcher.Dispatch(head)
	}

	for _, id := range s.queue.ProviderIDs() {
		if ctx.Err() != nil {
			s.logger.Warn("Sweep interrupted", zap.Error(ctx.Err()))
			break
		}
		report.Scanned++

		outcome, err := s.queue.NotifyHead(ctx, id, dispatch)
		monitoring.TrackSweep(string(outcome))
		switch outcome {
		case queue.HeadSkipped:
			report.Skipped++
			s.logger.Debug("Skipping provider without valid location", zap.String("providerId", id))
		case queue.HeadNotified:
			report.Notified++
		}

		if err != nil {
			if outcome == queue.HeadNotified && errors.Is(err, queue.ErrTransient) {
				report.SaveFailures++
			}
			s.logger.Error("Sweep failed for provider", zap.String("providerId", id), zap.Error(err))
		}
	}
	monitoring.CollectRuntime()
	return report
}

// Start schedules SweepOnce. A run still in progress when the next tick fires
// causes that tick to be skipped.
func (s *Sweeper) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	logger := cronLogger{s.logger.Sugar()}
	c := robfig.New(
		robfig.WithLogger(logger),
		robfig.WithChain(robfig.Recover(logger), robfig.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	s.cron = c
	c.Start()
	s.logger.Info("Queue sweeper started", zap.String("schedule", schedule))
	return nil
}

// Stop halts scheduling; the returned context is done once a running sweep ends.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.cron.Stop()
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	report := s.SweepOnce(ctx)
	s.logger.Info("Queue sweep completed",
		zap.Int("scanned", report.Scanned),
		zap.Int("skipped", report.Skipped),
		zap.Int("notified", report.Notified),
		zap.Int("saveFailures", report.SaveFailures),
		zap.Duration("took", time.Since(start)))
}

// cronLogger adapts zap to robfig's logger interface.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
