package eventhub

import (
	"encoding/json"
	"log"

	"paidvine/backend/internal/models"
)

// StartPubSubListener starts a goroutine that subscribes to every
// "activity:*" Redis channel and feeds the payloads into the hub's
// dispatch loop.
func (m *Manager) StartPubSubListener() {
	if m.Storage == nil {
		return
	}
	go func() {
		pubsub := m.Storage.SubscribeToActivity()
		defer pubsub.Close()

		ch := pubsub.Channel()

		for msg := range ch {
			var event models.ActivityEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshalling activity event: %v", err)
				continue
			}

			m.eventCh <- event
		}
	}()
}
