// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/wortschatz/internal/tasks"
)

// DefaultAudioSyncSchedule runs the missing-audio check nightly at 03:00.
const DefaultAudioSyncSchedule = "0 3 * * *"

// TaskEnqueuer saves a task on the queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task tasks.GenerateMissingAudioTask) (string, error)
}

// EnqueueFunc adapts a function to TaskEnqueuer.
type EnqueueFunc func(ctx context.Context, task tasks.GenerateMissingAudioTask) (string, error)

func (f EnqueueFunc) Enqueue(ctx context.Context, task tasks.GenerateMissingAudioTask) (string, error) {
	return f(ctx, task)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// AudioSyncScheduler periodically enqueues a GenerateMissingAudioTask so new
// vocabulary rows get their audio without a manual run.
type AudioSyncScheduler struct {
	queue      TaskEnqueuer
	schedule   string
	startIndex int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	lastTaskID string
	cancelFunc context.CancelFunc
}

func NewAudioSyncScheduler(queue TaskEnqueuer, schedule string, startIndex int) *AudioSyncScheduler {
	if schedule == "" {
		schedule = DefaultAudioSyncSchedule
	}
	return &AudioSyncScheduler{
		queue:      queue,
		schedule:   schedule,
		startIndex: startIndex,
		cron:       cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the job and starts the cron runner. The scheduler stops
// when ctx is cancelled.
func (s *AudioSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			log.Printf("Audio sync: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audio sync job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audio sync scheduler: started with schedule '%s'. Next run: %v", s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *AudioSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.mu.Unlock()

	// A running job takes the lock in RunNow, so wait outside it.
	<-s.cron.Stop().Done()

	log.Printf("Audio sync scheduler: stopped")
}

// RunNow enqueues the generation task immediately and returns its task ID.
func (s *AudioSyncScheduler) RunNow(ctx context.Context) (string, error) {
	id, err := s.queue.Enqueue(ctx, tasks.GenerateMissingAudioTask{StartIndex: s.startIndex})
	if err != nil {
		return "", fmt.Errorf("enqueue audio generation: %w", err)
	}

	s.mu.Lock()
	s.lastTaskID = id
	s.mu.Unlock()

	log.Printf("Audio sync: enqueued task %s", id)
	return id, nil
}

// IsRunning returns whether the scheduler is active.
func (s *AudioSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastTaskID returns the ID of the most recently enqueued task.
func (s *AudioSyncScheduler) LastTaskID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTaskID
}

// NextRunTime returns when the job fires next, or nil when stopped.
func (s *AudioSyncScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
