package interfaces

import "time"

// JobStatus represents the current status of a scheduled job
type JobStatus struct {
	Name      string     `json:"name"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// SchedulerService runs background maintenance jobs.
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
	GetJobStatus() []JobStatus
}
