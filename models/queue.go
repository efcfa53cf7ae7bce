package models

import "time"

// QueueEntry is one customer waiting at a provider.
type QueueEntry struct {
	ID              string    `bson:"id" json:"id"`
	CustomerID      string    `bson:"customerId" json:"customerId"`
	CustomerName    string    `bson:"customerName" json:"customerName"`
	CustomerContact string    `bson:"customerContact" json:"customerContact"`
	DeviceToken     string    `bson:"deviceToken,omitempty" json:"deviceToken,omitempty"`
	Service         string    `bson:"service" json:"service"`
	JoinedAt        time.Time `bson:"joinedAt" json:"joinedAt"`
	Notified        bool      `bson:"notified" json:"notified"`
}

// Summary is the entrant view published when someone joins.
func (e QueueEntry) Summary(position, etaMinutes int) EntrySummary {
	return EntrySummary{
		CustomerID:   e.CustomerID,
		CustomerName: e.CustomerName,
		Service:      e.Service,
		Position:     position,
		EtaMinutes:   etaMinutes,
		JoinedAt:     e.JoinedAt,
	}
}

type EntrySummary struct {
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Service      string    `json:"service"`
	Position     int       `json:"position"`
	EtaMinutes   int       `json:"etaMinutes"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// JoinRequest carries an already-authenticated customer identity.
type JoinRequest struct {
	ProviderID      string `json:"-"`
	CustomerID      string `json:"customerId"`
	CustomerName    string `json:"customerName"`
	CustomerContact string `json:"customerContact"`
	DeviceToken     string `json:"deviceToken,omitempty"`
	Service         string `json:"service"`
}

type JoinResult struct {
	Position    int        `json:"position"`
	EtaMinutes  int        `json:"etaMinutes"`
	QueueLength int        `json:"queueLength"`
	Entry       QueueEntry `json:"entry"`
}

type LeaveResult struct {
	QueueLength int `json:"queueLength"`
}

// ServeResult has a nil Served when the queue was already empty.
type ServeResult struct {
	Served      *QueueEntry `json:"served"`
	QueueLength int         `json:"queueLength"`
}

type ReplaceResult struct {
	QueueLength int `json:"queueLength"`
}

// CustomerStatus answers "where am I queued?".
type CustomerStatus struct {
	InQueue  bool             `json:"inQueue"`
	Provider *ProviderSummary `json:"provider,omitempty"`
	Position *int             `json:"position,omitempty"`
	Service  string           `json:"service,omitempty"`
	JoinedAt *time.Time       `json:"joinedAt,omitempty"`
}

// QueueView is the provider dashboard snapshot.
type QueueView struct {
	Provider ProviderSummary `json:"provider"`
	Queue    []QueueEntry    `json:"queue"`
}
