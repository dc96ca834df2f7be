package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/pfrederiksen/mytime-ics/internal/logger"
	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSchedule validates a cron expression. Standard five-field specs, an
// optional leading seconds field and descriptors such as "@every 15m" are accepted.
func ParseSchedule(spec string) (cron.Schedule, error) {
	sched, err := scheduleParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return sched, nil
}

// CronTrigger fires on a cron schedule.
type CronTrigger struct {
	mu      sync.Mutex
	spec    string
	cron    *cron.Cron
	ch      chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	stopped bool
}

// NewCronTrigger creates a trigger for spec.
func NewCronTrigger(spec string) (*CronTrigger, error) {
	if _, err := ParseSchedule(spec); err != nil {
		return nil, err
	}

	return &CronTrigger{
		spec:   spec,
		cron:   cron.New(cron.WithParser(scheduleParser)),
		ch:     make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

// C returns the signal channel.
func (ct *CronTrigger) C() <-chan struct{} {
	return ct.ch
}

// Start schedules the trigger. It stops on its own when ctx is cancelled.
func (ct *CronTrigger) Start(ctx context.Context) error {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if ct.running || ct.stopped {
		return nil
	}

	if _, err := ct.cron.AddFunc(ct.spec, func() {
		logger.IncrCounter("watch.cron_fires")
		notify(ct.ch)
	}); err != nil {
		return fmt.Errorf("scheduling %q: %w", ct.spec, err)
	}

	ct.running = true
	ct.cron.Start()
	logger.Debug("cron trigger started", logger.Fields{"schedule": ct.spec})

	go func() {
		defer close(ct.doneCh)
		select {
		case <-ctx.Done():
		case <-ct.stopCh:
		}
		<-ct.cron.Stop().Done()
	}()
	return nil
}

// Stop stops the schedule and waits for a running fire to finish.
func (ct *CronTrigger) Stop() {
	ct.mu.Lock()
	if ct.stopped {
		ct.mu.Unlock()
		return
	}
	ct.stopped = true
	wasRunning := ct.running
	ct.running = false
	ct.mu.Unlock()

	close(ct.stopCh)
	if wasRunning {
		<-ct.doneCh
	}
}
