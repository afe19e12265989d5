package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventDeleted EventType = "deleted"
)

// ExpenseEvent announces a change to one expense. Consumers reload state from
// the database; the event carries only what is needed to find the affected month.
type ExpenseEvent struct {
	EventID   string    `json:"event_id"`
	Type      EventType `json:"type"`
	ID        int64     `json:"id"`
	EntryDate string    `json:"entry_date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(typ EventType, id int64, entryDate string) *ExpenseEvent {
	return &ExpenseEvent{
		EventID:   uuid.NewString(),
		Type:      typ,
		ID:        id,
		EntryDate: entryDate,
		Timestamp: time.Now().UTC(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes and checks an event body.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var evt ExpenseEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, err
	}
	switch evt.Type {
	case EventCreated, EventDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", evt.Type)
	}
	if evt.EntryDate == "" {
		return nil, fmt.Errorf("event %s has no entry_date", evt.EventID)
	}
	return &evt, nil
}
