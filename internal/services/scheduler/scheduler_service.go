package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/interfaces"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// jobEntry represents a registered job with metadata
type jobEntry struct {
	name      string
	schedule  string
	handler   JobFunc
	timeout   time.Duration
	cronID    cron.EntryID
	lastRun   *time.Time
	isRunning bool
	lastError string
}

// Service implements SchedulerService interface
type Service struct {
	cron    *cron.Cron
	logger  arbor.ILogger
	jobMu   sync.Mutex // Protects jobs map and entry state
	jobs    map[string]*jobEntry
	running bool
}

// NewService creates a new scheduler service using 6-field (seconds-first) cron expressions
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		jobs:   make(map[string]*jobEntry),
	}
}

var _ interfaces.SchedulerService = (*Service)(nil)

// RegisterJob adds a named job. A job already running is skipped by its next
// tick rather than run twice.
func (s *Service) RegisterJob(name, schedule string, timeout time.Duration, handler JobFunc) error {
	if err := common.ValidateSchedule(schedule); err != nil {
		return err
	}

	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	entry := &jobEntry{
		name:     name,
		schedule: schedule,
		handler:  handler,
		timeout:  timeout,
	}

	id, err := s.cron.AddFunc(schedule, func() { s.execute(entry) })
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	entry.cronID = id
	s.jobs[name] = entry

	s.logger.Info().
		Str("job", name).
		Str("schedule", schedule).
		Msg("Scheduled job registered")
	return nil
}

// Start begins the scheduler
func (s *Service) Start() error {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.cron.Start()
	s.running = true
	s.logger.Info().Int("jobs", len(s.jobs)).Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Service) Stop() error {
	s.jobMu.Lock()
	if !s.running {
		s.jobMu.Unlock()
		return nil
	}
	s.running = false
	s.jobMu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
	return nil
}

// IsRunning returns true if the scheduler is active
func (s *Service) IsRunning() bool {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()
	return s.running
}

// GetJobStatus returns the status of every registered job, sorted by name
func (s *Service) GetJobStatus() []interfaces.JobStatus {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	statuses := make([]interfaces.JobStatus, 0, len(s.jobs))
	for _, entry := range s.jobs {
		status := interfaces.JobStatus{
			Name:      entry.name,
			Schedule:  entry.schedule,
			LastRun:   entry.lastRun,
			LastError: entry.lastError,
		}
		if s.running {
			if next := s.cron.Entry(entry.cronID).Next; !next.IsZero() {
				status.NextRun = &next
			}
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	return statuses
}

// RunNow executes a job synchronously outside its schedule
func (s *Service) RunNow(name string) error {
	s.jobMu.Lock()
	entry, ok := s.jobs[name]
	s.jobMu.Unlock()
	if !ok {
		return fmt.Errorf("job %s not found", name)
	}

	return s.execute(entry)
}

func (s *Service) execute(entry *jobEntry) (err error) {
	s.jobMu.Lock()
	if entry.isRunning {
		s.jobMu.Unlock()
		s.logger.Debug().Str("job", entry.name).Msg("Job still running, skipping")
		return nil
	}
	entry.isRunning = true
	s.jobMu.Unlock()

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			s.logger.Error().
				Str("job", entry.name).
				Str("stack", common.GetStackTrace()).
				Msg("Recovered from panic in scheduled job")
		}

		s.jobMu.Lock()
		entry.isRunning = false
		entry.lastRun = &started
		entry.lastError = ""
		if err != nil {
			entry.lastError = err.Error()
		}
		s.jobMu.Unlock()
	}()

	ctx := context.Background()
	if entry.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, entry.timeout)
		defer cancel()
	}

	if err = entry.handler(ctx); err != nil {
		s.logger.Error().Err(err).Str("job", entry.name).Msg("Scheduled job failed")
		return err
	}

	s.logger.Debug().
		Str("job", entry.name).
		Dur("duration", time.Since(started)).
		Msg("Scheduled job completed")
	return nil
}
