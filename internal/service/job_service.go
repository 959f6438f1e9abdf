package service

import (
	"log"
)

// QueueStats is the slice of the pipeline the stats job reads.
type QueueStats interface {
	QueueSize() int
	DLQSize() int
}

type JobService struct {
	queue QueueStats
}

func NewJobService(queue QueueStats) *JobService {
	return &JobService{queue: queue}
}

// ReportQueueStats logs the pipeline's buffer depth and dead-letter count.
// Scheduled from the composition root; a growing DLQ means producers are
// outrunning the worker.
func (s *JobService) ReportQueueStats() {
	pending := s.queue.QueueSize()
	dead := s.queue.DLQSize()
	if dead > 0 {
		log.Printf("Cron Job: %d events pending, %d dead-lettered", pending, dead)
		return
	}
	log.Printf("Cron Job: %d events pending, DLQ empty", pending)
}
