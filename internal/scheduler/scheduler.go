package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Counter is anything that can report how many items it holds.
type Counter interface {
	Len() int
}

// Scheduler periodically logs the size of the record store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Counter
	interval  time.Duration
	report    func(n int)
}

// New creates a new Scheduler.
func New(store Counter, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		interval:  interval,
		report: func(n int) {
			log.Printf("INFO: scheduler: record store holds %d records", n)
		},
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first report runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("INFO: scheduler: store stats disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.report(s.store.Len())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
