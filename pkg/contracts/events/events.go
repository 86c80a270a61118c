// Package events contains the event contract shared between the
// WebSocket hub and browser clients of the heat-reuse calculator.
package events

import (
	"encoding/json"
	"time"
)

// Event type names carried in the envelope's Type field
const (
	TypeConnection   = "connection"
	TypeProgress     = "progress"
	TypeDataUpdate   = "data_update"
	TypeCalcComplete = "calc:complete"
	TypeError        = "error"
)

// Data update subtypes and actions
const (
	SubtypeTables = "tables"
	ActionRefresh = "refresh"
)

// Envelope is the wire format of every hub broadcast
type Envelope struct {
	Type      string      `json:"type"`
	Subtype   string      `json:"subtype,omitempty"`
	Action    string      `json:"action,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// NewEnvelope builds an envelope stamped with the current time
func NewEnvelope(eventType string, data interface{}) Envelope {
	return Envelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Marshal renders the envelope as JSON
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
