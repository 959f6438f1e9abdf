package service

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"garagem/internal/entities"
)

// DefaultQueueCapacity bounds the in-flight event buffer.
const DefaultQueueCapacity = 1000

// EventHandler is the pipeline's sole downstream consumer.
type EventHandler interface {
	HandleEntry(plate string, entryTime time.Time) error
	HandleParked(plate string, lat, lng float64) error
	HandleExit(plate string, exitTime time.Time) error
}

// EventQueueService decouples webhook producers from event processing. Any
// number of goroutines may Enqueue concurrently; a single worker drains the
// buffer in strict acceptance order. Overflowing events go to an unbounded
// dead-letter queue and the producer is told via the boolean return — an
// event is never silently dropped.
type EventQueueService struct {
	events  chan entities.WebhookEvent
	handler EventHandler

	mu  sync.Mutex
	dlq []entities.WebhookEvent

	paused atomic.Bool
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewEventQueueService builds a stopped pipeline with the given buffer
// capacity. Call Start to launch the worker.
func NewEventQueueService(capacity int, handler EventHandler) *EventQueueService {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &EventQueueService{
		events:  make(chan entities.WebhookEvent, capacity),
		handler: handler,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the single consumer goroutine.
func (s *EventQueueService) Start() {
	go s.consume()
}

// Stop signals the worker and waits until it has finished the event currently
// being processed. Safe to call more than once.
func (s *EventQueueService) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// Pause suspends draining without discarding buffered events or rejecting new
// submissions. A control/testing hook, not a production primitive.
func (s *EventQueueService) Pause() {
	s.paused.Store(true)
}

// Resume continues draining after a Pause.
func (s *EventQueueService) Resume() {
	s.paused.Store(false)
}

// Enqueue accepts an event into the buffer, or diverts it to the dead-letter
// queue when the buffer is full. Never blocks.
func (s *EventQueueService) Enqueue(event entities.WebhookEvent) bool {
	select {
	case s.events <- event:
		return true
	default:
		log.Printf("Queue full! Event moved to DLQ: %s - %s", event.EventType, event.LicensePlate)
		s.mu.Lock()
		s.dlq = append(s.dlq, event)
		s.mu.Unlock()
		return false
	}
}

// QueueSize returns the number of buffered, not yet processed events.
func (s *EventQueueService) QueueSize() int {
	return len(s.events)
}

// DLQSize returns the number of dead-lettered events.
func (s *EventQueueService) DLQSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dlq)
}

// DLQSnapshot returns a copy of the dead-letter queue for inspection.
func (s *EventQueueService) DLQSnapshot() []entities.WebhookEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]entities.WebhookEvent, len(s.dlq))
	copy(snapshot, s.dlq)
	return snapshot
}

func (s *EventQueueService) consume() {
	log.Println("Event consumer started")
	defer close(s.done)

	for {
		if s.paused.Load() {
			select {
			case <-s.stop:
				return
			case <-time.After(10 * time.Millisecond):
			}
			continue
		}

		// The stop signal must win even when the buffer has events ready,
		// otherwise a shutdown would drain the whole backlog first.
		select {
		case <-s.stop:
			return
		default:
		}

		select {
		case <-s.stop:
			return
		case event := <-s.events:
			s.processEvent(event)
		}
	}
}

// processEvent dispatches one event to the handler. Failures are logged with
// enough context to identify the event and never terminate the worker; there
// is no retry and no requeue.
func (s *EventQueueService) processEvent(event entities.WebhookEvent) {
	var err error
	switch event.Type() {
	case entities.EventEntry:
		var entry time.Time
		if entry, err = parseEventTime(event.EntryTime); err == nil {
			err = s.handler.HandleEntry(event.LicensePlate, entry)
		}
	case entities.EventParked:
		var lat, lng float64
		if event.Lat != nil {
			lat = *event.Lat
		}
		if event.Lng != nil {
			lng = *event.Lng
		}
		err = s.handler.HandleParked(event.LicensePlate, lat, lng)
	case entities.EventExit:
		var exit time.Time
		if exit, err = parseEventTime(event.ExitTime); err == nil {
			err = s.handler.HandleExit(event.LicensePlate, exit)
		}
	default:
		log.Printf("Unknown event type: %s", event.EventType)
		return
	}

	if err != nil {
		log.Printf("Failed to process event %s - %s: %v", event.EventType, event.LicensePlate, err)
	}
}

// Event timestamps arrive as ISO 8601 with or without zone, and the simulator
// occasionally sends a space separator.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseEventTime(value string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable event time %q", value)
}
