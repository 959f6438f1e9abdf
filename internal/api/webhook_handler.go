package api

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"

	"garagem/internal/entities"
)

// License plates: legacy Brazilian (ABC1234) or Mercosul (ABC1D23).
var platePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$|^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)

// EventQueue is the ingestion boundary the webhook posts into.
type EventQueue interface {
	Enqueue(event entities.WebhookEvent) bool
	QueueSize() int
}

type WebhookHandler struct {
	Queue EventQueue
}

func NewWebhookHandler(queue EventQueue) *WebhookHandler {
	return &WebhookHandler{Queue: queue}
}

// HandleEvent accepts a movement event: 202 when buffered, 503 when the
// buffer is full (the event is dead-lettered), 400 when malformed.
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var event entities.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", "invalid request body"))
		return
	}

	if !platePattern.MatchString(event.LicensePlate) {
		writeJSON(w, http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", "invalid license plate format"))
		return
	}
	if event.Type() == entities.EventUnknown {
		writeJSON(w, http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", "invalid event type"))
		return
	}

	log.Printf("Event received: %s - %s (queue: %d)", event.EventType, event.LicensePlate, h.Queue.QueueSize())

	if !h.Queue.Enqueue(event) {
		log.Printf("Queue full, event rejected: %s - %s", event.EventType, event.LicensePlate)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
