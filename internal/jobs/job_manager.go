package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules configures the jobs run by JobManager. Empty values fall back to the defaults.
type Schedules struct {
	SessionSweep       string
	SessionIdleTimeout time.Duration
	RegistryStats      string
}

// Registry is what the jobs need from the subscription registry.
type Registry interface {
	SessionSweeper
	StatsSource
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	sessionSweepJob  *SessionSweepJob
	registryStatsJob *RegistryStatsJob
}

func NewJobManager(registry Registry, schedules Schedules, logger *slog.Logger) *JobManager {
	return &JobManager{
		sessionSweepJob:  NewSessionSweepJob(registry, schedules.SessionSweep, schedules.SessionIdleTimeout, logger),
		registryStatsJob: NewRegistryStatsJob(registry, schedules.RegistryStats, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}

	if err := jm.registryStatsJob.Start(); err != nil {
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start registry stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.registryStatsJob.Stop()
	jm.sessionSweepJob.Stop()
}
