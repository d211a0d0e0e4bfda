package chatstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vpittamp/graphpilot/src/aisdk"
)

// MessageLog is the full message sequence of a chat session, stored as a
// single JSON document and replaced wholesale on every save.
type MessageLog []*aisdk.Message

// Scan implements the sql.Scanner interface for MessageLog.
func (m *MessageLog) Scan(value interface{}) error {
	if value == nil {
		*m = MessageLog{}
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" || v == "[]" {
			*m = MessageLog{}
			return nil
		}
		return json.Unmarshal([]byte(v), m)
	case []byte:
		if len(v) == 0 || string(v) == "[]" {
			*m = MessageLog{}
			return nil
		}
		return json.Unmarshal(v, m)
	default:
		return fmt.Errorf("cannot scan type %T into MessageLog", value)
	}
}

// Value implements the driver.Valuer interface for MessageLog.
func (m MessageLog) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Chat is one conversation's durable record.
type Chat struct {
	ID        string     `json:"id" db:"id"`
	OwnerID   string     `json:"owner_id" db:"owner_id"`
	Title     string     `json:"title" db:"title"`
	SharePath string     `json:"share_path,omitempty" db:"share_path"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	Messages  MessageLog `json:"messages" db:"messages"`
}

// Summary is the listing shape for a chat, ordered by the index score of the
// last successful save.
type Summary struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	SavedAt   int64     `json:"saved_at" db:"saved_at"` // unix milliseconds
}
