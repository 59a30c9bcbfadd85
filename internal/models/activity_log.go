package models

import (
	"encoding/json"
	"time"
)

// ActivityLog is an append-only audit entry surrounding a mutating action.
// Entries are never updated or deleted by the application.
type ActivityLog struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	ActionType string          `json:"action_type"`
	EntityType string          `json:"entity_type"`
	EntityID   int             `json:"entity_id"`
	OldValues  json.RawMessage `json:"old_values,omitempty"`
	NewValues  json.RawMessage `json:"new_values,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserAgent  string          `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
