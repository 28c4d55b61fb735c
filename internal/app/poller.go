package app

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
)

const defaultPollInterval = 300 * time.Second

// Poller asks the controller for a silent refresh on a fixed cadence.
type Poller struct {
	scheduler *gocron.Scheduler
}

// StartPoller schedules the poll job and returns immediately. The first poll
// happens one interval after start. polls should have a buffer of one: a tick
// that finds a poll already waiting is dropped.
func StartPoller(ctx context.Context, polls chan<- struct{}, interval time.Duration) (*Poller, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	s := gocron.NewScheduler(time.Local)
	_, err := s.Every(interval).WaitForSchedule().SingletonMode().Do(func() {
		enqueuePoll(ctx, polls)
	})
	if err != nil {
		return nil, err
	}
	s.StartAsync()

	return &Poller{scheduler: s}, nil
}

// Stop cancels future polls.
func (p *Poller) Stop() {
	if p != nil && p.scheduler != nil {
		p.scheduler.Stop()
	}
}

// enqueuePoll marks a poll as pending without waiting. It reports whether a
// new poll was queued; false means one was already pending or ctx is done.
func enqueuePoll(ctx context.Context, polls chan<- struct{}) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case polls <- struct{}{}:
		return true
	default:
		return false
	}
}
