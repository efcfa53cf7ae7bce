package cron

import (
	"context"
	"errors"
	"sync"
	"testing"

	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/models"
	"barberqueue/services/queue"
	"barberqueue/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingDispatcher struct {
	mu    sync.Mutex
	heads []models.HeadOfQueue
}

func (d *recordingDispatcher) Dispatch(head models.HeadOfQueue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.heads = append(d.heads, head)
}

func (d *recordingDispatcher) customers() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.heads))
	for _, h := range d.heads {
		out = append(out, h.Entry.CustomerID)
	}
	return out
}

type saveFailingRepo struct {
	*providerRepo.MemoryProviderRepo
	failFor string
}

func (r *saveFailingRepo) Save(ctx context.Context, p *models.Provider) error {
	if p.ID == r.failFor {
		return errors.New("write conflict")
	}
	return r.MemoryProviderRepo.Save(ctx, p)
}

func seedProvider(t *testing.T, repo providerRepo.ProviderRepository, id string, loc *models.GeoPoint) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Provider{
		ID: id, Name: "Salon " + id, Address: "Main St", Contact: id + "@example.com", Location: loc,
	}))
}

func newSweepFixture(t *testing.T, repo providerRepo.ProviderRepository) (*queue.DefaultQueueService, *recordingDispatcher, *Sweeper) {
	t.Helper()
	svc := queue.NewDefaultQueueService(repo, nil, zap.NewNop())
	require.NoError(t, svc.Load(context.Background()))
	d := &recordingDispatcher{}
	return svc, d, NewSweeper(svc, d, zap.NewNop())
}

func joinQueue(t *testing.T, svc *queue.DefaultQueueService, providerID, customerID string) {
	t.Helper()
	_, err := svc.JoinQueue(context.Background(), models.JoinRequest{ProviderID: providerID, CustomerID: customerID, Service: "Haircut"})
	require.NoError(t, err)
}

func TestSweepNotifiesHeadExactlyOnce(t *testing.T) {
	repo := providerRepo.NewMemoryProviderRepo()
	seedProvider(t, repo, "s1", models.NewGeoPoint(-1.29, 36.82))
	seedProvider(t, repo, "s2", models.NewGeoPoint(-1.30, 36.80))
	svc, d, sweeper := newSweepFixture(t, repo)

	joinQueue(t, svc, "s1", "alice")
	joinQueue(t, svc, "s1", "bob")

	report := sweeper.SweepOnce(context.Background())
	assert.Equal(t, SweepReport{Scanned: 2, Notified: 1}, report)
	assert.Equal(t, []string{"alice"}, d.customers())

	report = sweeper.SweepOnce(context.Background())
	assert.Equal(t, 0, report.Notified)
	assert.Equal(t, []string{"alice"}, d.customers())

	stored, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, stored.Queue[0].Notified)
	assert.False(t, stored.Queue[1].Notified)

	_, err = svc.ServeNext(context.Background(), "s1")
	require.NoError(t, err)
	sweeper.SweepOnce(context.Background())
	assert.Equal(t, []string{"alice", "bob"}, d.customers())
}

func TestSweepSkipsProvidersWithInvalidLocation(t *testing.T) {
	repo := providerRepo.NewMemoryProviderRepo()
	seedProvider(t, repo, "nowhere", nil)
	seedProvider(t, repo, "line", &models.GeoPoint{Coordinates: []float64{1, 2}})
	seedProvider(t, repo, "ok", models.NewGeoPoint(-1.29, 36.82))
	svc, d, sweeper := newSweepFixture(t, repo)

	joinQueue(t, svc, "nowhere", "alice")
	joinQueue(t, svc, "line", "bob")
	joinQueue(t, svc, "ok", "carol")

	report := sweeper.SweepOnce(context.Background())
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.Notified)
	assert.Equal(t, []string{"carol"}, d.customers())

	view, err := svc.GetQueue(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.False(t, view.Queue[0].Notified)
}

func TestSweepContinuesAfterSaveFailure(t *testing.T) {
	repo := &saveFailingRepo{MemoryProviderRepo: providerRepo.NewMemoryProviderRepo()}
	seedProvider(t, repo, "a", models.NewGeoPoint(-1.29, 36.82))
	seedProvider(t, repo, "b", models.NewGeoPoint(-1.29, 36.82))
	svc, d, sweeper := newSweepFixture(t, repo)

	joinQueue(t, svc, "a", "alice")
	joinQueue(t, svc, "b", "bob")
	repo.failFor = "a"

	report := sweeper.SweepOnce(context.Background())
	assert.Equal(t, 2, report.Notified)
	assert.Equal(t, 1, report.SaveFailures)
	assert.ElementsMatch(t, []string{"alice", "bob"}, d.customers())

	// The in-memory flag stuck, so alice is not messaged again.
	report = sweeper.SweepOnce(context.Background())
	assert.Equal(t, 0, report.Notified)
	assert.Len(t, d.customers(), 2)
}

func TestSweepStopsOnCancelledContext(t *testing.T) {
	repo := providerRepo.NewMemoryProviderRepo()
	seedProvider(t, repo, "s1", models.NewGeoPoint(-1.29, 36.82))
	svc, d, sweeper := newSweepFixture(t, repo)
	joinQueue(t, svc, "s1", "alice")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := sweeper.SweepOnce(ctx)
	assert.Equal(t, SweepReport{}, report)
	assert.Empty(t, d.customers())
}

func TestSweeperStartRejectsBadSchedule(t *testing.T) {
	sweeper := NewSweeper(queue.NewDefaultQueueService(providerRepo.NewMemoryProviderRepo(), nil, nil), &recordingDispatcher{}, nil)
	assert.Error(t, sweeper.Start("every minute please"))

	require.NoError(t, sweeper.Start("@every 1h"))
	<-sweeper.Stop().Done()
}

type stubNotificationService struct {
	delivered []models.Notification
	err       error
}

func (s *stubNotificationService) NotifyNext(context.Context, models.HeadOfQueue) error { return nil }

func (s *stubNotificationService) Deliver(_ context.Context, n models.Notification) error {
	s.delivered = append(s.delivered, n)
	return s.err
}

func TestHandleNotifyTask(t *testing.T) {
	svc := &stubNotificationService{}
	handler := handleNotifyTask(svc, zap.NewNop())

	task, _, err := tasks.NewNotifyNextTask(models.NotifyPayload{
		ProviderID:   "s1",
		CustomerID:   "alice",
		Notification: models.Notification{To: "alice@example.com", Subject: "You're next at Salon s1"},
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Len(t, svc.delivered, 1)
	assert.Equal(t, "alice@example.com", svc.delivered[0].To)

	svc.err = errors.New("smtp down")
	err = handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handler(context.Background(), asynq.NewTask(tasks.TypeNotifyNext, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
