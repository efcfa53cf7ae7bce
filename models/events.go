package models

import "time"

// EventQueueUpdated is the only event name pushed on a provider channel.
const EventQueueUpdated = "queueUpdated"

// QueueEvent is the payload of a queueUpdated event. Exactly one of the
// marker fields is set, except for a plain reorder where none are.
type QueueEvent struct {
	ProviderID       string        `json:"providerId"`
	Queue            []QueueEntry  `json:"queue"`
	QueueLength      int           `json:"queueLength"`
	Joined           *EntrySummary `json:"joined,omitempty"`
	CustomerLeft     string        `json:"customerLeft,omitempty"`
	CustomerServed   *QueueEntry   `json:"customerServed,omitempty"`
	CustomerNotified string        `json:"customerNotified,omitempty"`
	Cleared          bool          `json:"cleared,omitempty"`
	At               time.Time     `json:"at"`
}
