package server

import (
	"encoding/json"
	"sync"
)

// SSEEvent is the payload published to challenge spectators.
type SSEEvent struct {
	Type           string `json:"type"`
	Username       string `json:"username,omitempty"`
	Score          int    `json:"score,omitempty"`
	ThresholdScore int    `json:"thresholdScore,omitempty"`
	Beaten         bool   `json:"beaten,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by challenge ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// given challenge.
func (b *Broker) Subscribe(challengeID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[challengeID] == nil {
		b.subs[challengeID] = make(map[chan []byte]struct{})
	}
	b.subs[challengeID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the challenge's subscribers.
func (b *Broker) Unsubscribe(challengeID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[challengeID], ch)
	if len(b.subs[challengeID]) == 0 {
		delete(b.subs, challengeID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given challenge.
func (b *Broker) Publish(challengeID string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[challengeID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
