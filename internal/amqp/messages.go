package amqp

import (
	"encoding/json"
	"time"

	"github.com/diogoviieira/register-track-bot/internal/core"
)

// Entry event operations.
const (
	OpEntryCreated = "entry.created"
	OpEntryUpdated = "entry.updated"
	OpEntryDeleted = "entry.deleted"
)

// EntryEvent is the lightweight message published after a ledger mutation.
// It carries only the row coordinates; consumers fetch the full entry from
// the database themselves.
type EntryEvent struct {
	Op        string    `json:"op"`
	Kind      core.Kind `json:"kind"`
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryEvent(op string, kind core.Kind, id, userID int64) *EntryEvent {
	return &EntryEvent{
		Op:        op,
		Kind:      kind,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *EntryEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryEventFromJSON(data []byte) (*EntryEvent, error) {
	var msg EntryEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
