package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSessionSweepSchedule = "*/15 * * * * *"
	DefaultSessionIdleTimeout   = 90 * time.Second
)

// SessionSweeper disconnects sessions idle for longer than the given duration.
type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// SessionSweepJob periodically drops subscriber sessions whose client stopped answering.
type SessionSweepJob struct {
	sweeper  SessionSweeper
	schedule string
	idle     time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSessionSweepJob(sweeper SessionSweeper, schedule string, idle time.Duration, logger *slog.Logger) *SessionSweepJob {
	if schedule == "" {
		schedule = DefaultSessionSweepSchedule
	}
	if idle <= 0 {
		idle = DefaultSessionIdleTimeout
	}
	return &SessionSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		idle:     idle,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started",
		"schedule", j.schedule, "idle_timeout", j.idle.String())
	return nil
}

// Run performs a single sweep.
func (j *SessionSweepJob) Run() {
	if n := j.sweeper.Sweep(j.idle); n > 0 {
		j.logger.InfoContext(context.Background(), "Disconnected idle sessions", "count", n)
	}
}

func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
