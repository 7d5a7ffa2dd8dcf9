// Package eventhub fans user activity events out to live websocket
// connections. Events enter through Redis pub/sub so every server
// instance sees submissions handled by its peers.
package eventhub

import (
	"log"

	"paidvine/backend/internal/models"
	"paidvine/backend/internal/storage"
)

// Manager routes activity events to connected clients. One connection is
// kept per user; a newer connection replaces the older one.
type Manager struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	Storage *storage.Service

	eventCh chan models.ActivityEvent
}

// NewManager creates the hub around the given storage service.
func NewManager(s *storage.Service) *Manager {
	return &Manager{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Storage:      s,
		eventCh:      make(chan models.ActivityEvent),
	}
}

// Run is the hub's main dispatch loop. Start it in its own goroutine.
func (m *Manager) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			if old, ok := m.Clients[client.GetUserID()]; ok {
				old.Close()
			}
			m.Clients[client.GetUserID()] = client
			log.Printf("Activity feed client registered: %s", client.GetUserID())

		case client := <-m.UnregisterCh:
			if current, ok := m.Clients[client.GetUserID()]; ok && current == client {
				delete(m.Clients, client.GetUserID())
				client.Close()
			}

		case event := <-m.eventCh:
			client, ok := m.Clients[event.UserID]
			if !ok {
				continue
			}
			select {
			case client.GetSendChannel() <- event:
			default:
				// Slow consumer: drop the connection rather than block the hub.
				delete(m.Clients, event.UserID)
				client.Close()
			}
		}
	}
}
