package models

import "time"

// Notification is an out-of-band message to a customer. To is an e-mail address,
// DeviceToken an FCM registration token; either may be empty.
type Notification struct {
	To          string            `json:"to,omitempty"`
	DeviceToken string            `json:"deviceToken,omitempty"`
	Subject     string            `json:"subject"`
	Text        string            `json:"text"`
	HTML        string            `json:"html"`
	Data        map[string]string `json:"data,omitempty"`
}

// HeadOfQueue is what the sweeper hands over when an entry reaches position 0.
type HeadOfQueue struct {
	Provider ProviderSummary `json:"provider"`
	Entry    QueueEntry      `json:"entry"`
}

// NotifyPayload is the asynq task body for a "you are next" message.
type NotifyPayload struct {
	ProviderID   string       `json:"providerId"`
	CustomerID   string       `json:"customerId"`
	Notification Notification `json:"notification"`
	QueuedAt     time.Time    `json:"queuedAt"`
}
