package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"barberqueue/models"
	"barberqueue/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleHead() models.HeadOfQueue {
	return models.HeadOfQueue{
		Provider: models.ProviderSummary{ID: "s1", Name: "Fade & Co", Address: "1 Main St", Contact: "0700 000 000"},
		Entry: models.QueueEntry{
			CustomerID:      "alice",
			CustomerName:    "Alice",
			CustomerContact: "alice@example.com",
			DeviceToken:     "device-1",
			Service:         "Haircut",
		},
	}
}

func TestComposeNext(t *testing.T) {
	n := ComposeNext(sampleHead())

	assert.Equal(t, "You're next at Fade & Co", n.Subject)
	assert.Equal(t, "alice@example.com", n.To)
	assert.Equal(t, "device-1", n.DeviceToken)
	assert.Contains(t, n.Text, "Hi Alice,")
	assert.Contains(t, n.Text, "Your turn is coming up next for Haircut at Fade & Co. Please reach the salon.")
	assert.Contains(t, n.Text, "Address: 1 Main St\nContact: 0700 000 000")
	assert.Contains(t, n.HTML, "<b>Haircut</b>")
	assert.Contains(t, n.HTML, "<b>Fade &amp; Co</b>")
	assert.Equal(t, "queue_next", n.Data["type"])
	assert.Equal(t, "alice", n.Data["customerId"])
}

func TestComposeNextPhoneContactHasNoMailTarget(t *testing.T) {
	head := sampleHead()
	head.Entry.CustomerContact = "+254700000000"
	assert.Empty(t, ComposeNext(head).To)
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
	err  error
}

func (s *stubNotifier) Send(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.err
}

func (s *stubNotifier) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestDeliverTriesEveryChannel(t *testing.T) {
	mail := &stubNotifier{err: errors.New("smtp timeout")}
	push := &stubNotifier{}
	svc := NewDefaultNotificationService(zap.NewNop()).With("mail", mail).With("push", push).With("none", nil)

	err := svc.NotifyNext(context.Background(), sampleHead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail: smtp timeout")
	assert.Equal(t, 1, mail.count())
	assert.Equal(t, 1, push.count())
}

func TestDeliverWithoutTargetsIsNoop(t *testing.T) {
	push := &stubNotifier{}
	svc := NewDefaultNotificationService(nil).With("push", push)

	require.NoError(t, svc.Deliver(context.Background(), models.Notification{Subject: "x"}))
	assert.Equal(t, 0, push.count())
}

func TestMailNotifierUnconfiguredSkips(t *testing.T) {
	m := NewMailNotifier(MailConfig{}, nil)
	assert.False(t, m.Configured())
	assert.NoError(t, m.Send(context.Background(), ComposeNext(sampleHead())))
	assert.NoError(t, m.Send(context.Background(), models.Notification{}))
}

type fakeFCM struct {
	messages []*messaging.Message
	err      error
}

func (f *fakeFCM) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.messages = append(f.messages, m)
	return "projects/x/messages/1", f.err
}

func TestPushNotifier(t *testing.T) {
	fcm := &fakeFCM{}
	p := NewPushNotifier(fcm, nil)

	require.NoError(t, p.Send(context.Background(), ComposeNext(sampleHead())))
	require.Len(t, fcm.messages, 1)
	msg := fcm.messages[0]
	assert.Equal(t, "device-1", msg.Token)
	assert.Equal(t, "You're next at Fade & Co", msg.Notification.Title)
	assert.Equal(t, "high", msg.Android.Priority)

	require.NoError(t, p.Send(context.Background(), models.Notification{Subject: "no token"}))
	assert.Len(t, fcm.messages, 1)

	fcm.err = errors.New("registration-token-not-registered")
	assert.Error(t, p.Send(context.Background(), ComposeNext(sampleHead())))
}

func TestInlineDispatcherSendsInBackground(t *testing.T) {
	push := &stubNotifier{}
	svc := NewDefaultNotificationService(nil).With("push", push)

	NewInlineDispatcher(svc, nil).Dispatch(sampleHead())
	assert.Eventually(t, func() bool { return push.count() == 1 }, time.Second, 5*time.Millisecond)
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	opts  [][]asynq.Option
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "t1", Queue: tasks.NotifyQueue}, nil
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

func TestTaskDispatcherEnqueuesComposedNotification(t *testing.T) {
	enq := &fakeEnqueuer{}
	NewTaskDispatcher(enq, zap.NewNop()).Dispatch(sampleHead())

	require.Eventually(t, func() bool { return enq.count() == 1 }, time.Second, 5*time.Millisecond)

	enq.mu.Lock()
	task := enq.tasks[0]
	enq.mu.Unlock()
	assert.Equal(t, tasks.TypeNotifyNext, task.Type())

	payload, err := tasks.ParseNotifyNextPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "s1", payload.ProviderID)
	assert.Equal(t, "alice", payload.CustomerID)
	assert.Equal(t, "alice@example.com", payload.Notification.To)
}
