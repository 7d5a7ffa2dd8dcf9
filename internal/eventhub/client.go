package eventhub

import "paidvine/backend/internal/models"

// Client is the interface for one live activity-feed connection. It
// abstracts the underlying transport so the hub can manage different
// client types uniformly.
type Client interface {
	// GetUserID returns the identifier of the user this connection belongs to.
	GetUserID() string

	// GetSendChannel returns the channel through which the hub delivers
	// events to this specific client. It is a send-only channel.
	GetSendChannel() chan<- models.ActivityEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and associated channels.
	Close()
}
