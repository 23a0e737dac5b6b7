package jobs

import (
	"context"
	"log/slog"

	"deliveryhub/internal/adapters/in/realtime"
	"deliveryhub/internal/core/domain/model/channel"

	"github.com/robfig/cron/v3"
)

const DefaultRegistryStatsSchedule = "0 * * * * *"

type StatsSource interface {
	Stats() realtime.Stats
}

// RegistryStatsJob logs how many sessions are connected and how many subscribe to each channel.
type RegistryStatsJob struct {
	source   StatsSource
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRegistryStatsJob(source StatsSource, schedule string, logger *slog.Logger) *RegistryStatsJob {
	if schedule == "" {
		schedule = DefaultRegistryStatsSchedule
	}
	return &RegistryStatsJob{
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "registry_stats_job"),
	}
}

func (j *RegistryStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Registry stats job started", "schedule", j.schedule)
	return nil
}

func (j *RegistryStatsJob) Run() {
	stats := j.source.Stats()

	customerChannels, customerSubscribers := 0, 0
	for ch, n := range stats.Channels {
		if _, ok := ch.CustomerID(); ok {
			customerChannels++
			customerSubscribers += n
		}
	}

	j.logger.InfoContext(context.Background(), "Subscription registry",
		"sessions", stats.Sessions,
		"delivery_pool_subscribers", stats.Channels[channel.DeliveryPool],
		"admin_subscribers", stats.Channels[channel.Admin],
		"customer_channels", customerChannels,
		"customer_subscribers", customerSubscribers,
	)
}

func (j *RegistryStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Registry stats job stopped")
}
