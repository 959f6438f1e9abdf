package entities

// EventType identifies the kind of vehicle-movement event delivered by the
// simulator webhook. Unrecognized values map to EventUnknown instead of being
// matched as raw strings downstream.
type EventType string

const (
	EventEntry   EventType = "ENTRY"
	EventParked  EventType = "PARKED"
	EventExit    EventType = "EXIT"
	EventUnknown EventType = "UNKNOWN"
)

// ParseEventType normalizes a wire value into a known EventType.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case EventEntry, EventParked, EventExit:
		return EventType(s)
	default:
		return EventUnknown
	}
}

// WebhookEvent is the payload posted by the garage simulator. Timestamps stay
// as strings here; they are parsed when the event is dispatched so a malformed
// time is a processing failure, not a decode failure.
type WebhookEvent struct {
	LicensePlate string   `json:"license_plate"`
	EntryTime    string   `json:"entry_time,omitempty"`
	ExitTime     string   `json:"exit_time,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	EventType    string   `json:"event_type"`
}

// Type returns the normalized event type.
func (e WebhookEvent) Type() EventType {
	return ParseEventType(e.EventType)
}
