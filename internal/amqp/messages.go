package amqp

import (
	"encoding/json"
	"time"
)

const (
	KindSync   = "sync"
	KindDelete = "delete"
)

// Message is the compact envelope published on every transaction mutation.
// It carries only the id and version; the worker fetches the full row from
// storage before exporting.
type Message struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSyncMessage announces a created transaction that needs exporting.
func NewSyncMessage(id, version int64) *Message {
	return &Message{
		Kind:      KindSync,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// NewDeleteMessage announces a removed transaction.
func NewDeleteMessage(id int64) *Message {
	return &Message{
		Kind:      KindDelete,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func FromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
