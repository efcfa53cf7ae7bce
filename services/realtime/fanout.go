package realtime

import (
	"context"
	"errors"
	"fmt"

	"barberqueue/monitoring"
)

type namedPublisher struct {
	name string
	pub  Publisher
}

// Fanout publishes to every configured transport. One failing transport does
// not stop the others; all failures are joined into the returned error.
type Fanout struct {
	publishers []namedPublisher
}

func NewFanout() *Fanout {
	return &Fanout{}
}

func (f *Fanout) Add(name string, p Publisher) *Fanout {
	f.publishers = append(f.publishers, namedPublisher{name: name, pub: p})
	return f
}

func (f *Fanout) Len() int {
	return len(f.publishers)
}

func (f *Fanout) Publish(ctx context.Context, channel, event string, payload any) error {
	var errs []error
	for _, np := range f.publishers {
		if err := np.pub.Publish(ctx, channel, event, payload); err != nil {
			monitoring.TrackPublishFailure(np.name)
			errs = append(errs, fmt.Errorf("%s: %w", np.name, err))
		}
	}
	return errors.Join(errs...)
}
