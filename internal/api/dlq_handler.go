package api

import (
	"net/http"

	"garagem/internal/entities"
)

// DLQReader exposes the dead-letter queue read-only.
type DLQReader interface {
	DLQSnapshot() []entities.WebhookEvent
	DLQSize() int
}

type DLQHandler struct {
	Queue DLQReader
}

func NewDLQHandler(queue DLQReader) *DLQHandler {
	return &DLQHandler{Queue: queue}
}

func (h *DLQHandler) GetDLQ(w http.ResponseWriter, r *http.Request) {
	events := h.Queue.DLQSnapshot()
	if events == nil {
		events = []entities.WebhookEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *DLQHandler) GetDLQSize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"size": h.Queue.DLQSize()})
}
