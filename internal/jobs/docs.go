// Package jobs provides scheduled maintenance of the subscription registry.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. SessionSweepJob - disconnects websocket sessions that sent nothing (not even a pong)
// for longer than the idle timeout. Default schedule: every 15 seconds.
// 2. RegistryStatsJob - logs the session count and the subscriber count per channel.
// Default schedule: every minute.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(registry, jobs.Schedules{
//		SessionSweep:       "*/15 * * * * *",
//		SessionIdleTimeout: 90 * time.Second,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An invalid schedule fails StartAll; jobs already started are stopped again.
package jobs
