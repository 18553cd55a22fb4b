package comm

import (
	"encoding/json"
	"time"
)

// Record event types published on the events subject.
const (
	RecordCreated = "record.created"
	RecordDeleted = "record.deleted"
)

// Message is the envelope shared by the NATS publisher and the live feed.
type Message struct {
	Type      string          `json:"type"` // e.g. "record.created"
	Data      json.RawMessage `json:"data"`
	Source    string          `json:"source,omitempty"` // publishing instance id
	Timestamp time.Time       `json:"timestamp"`
}

type RecordDeletedData struct {
	ID int64 `json:"id"`
}

// NewMessage wraps data, which must marshal to JSON, into a Message.
func NewMessage(msgType string, data interface{}, source string) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Data:      raw,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}, nil
}
