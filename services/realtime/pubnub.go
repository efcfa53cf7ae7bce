package realtime

import (
	"context"
	"fmt"

	pubnub "github.com/pubnub/go/v7"
)

// PubNubPublisher pushes events to PubNub channels named after the provider id,
// which is what the mobile apps subscribe to.
type PubNubPublisher struct {
	send func(channel string, message any) error
}

func NewPubNubPublisher(publishKey, subscribeKey, userID string) *PubNubPublisher {
	cfg := pubnub.NewConfigWithUserId(pubnub.UserId(userID))
	cfg.PublishKey = publishKey
	cfg.SubscribeKey = subscribeKey
	pn := pubnub.NewPubNub(cfg)

	return &PubNubPublisher{
		send: func(channel string, message any) error {
			_, _, err := pn.Publish().Channel(channel).Message(message).Execute()
			return err
		},
	}
}

func (p *PubNubPublisher) Publish(_ context.Context, channel, event string, payload any) error {
	if err := p.send(channel, Envelope{Channel: channel, Event: event, Payload: payload}); err != nil {
		return fmt.Errorf("pubnub publish to %s failed: %w", channel, err)
	}
	return nil
}
