package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the directory cache when set.
	RedisAddr         string
	DirectoryCacheTTL time.Duration

	// RabbitMQURL enables the cross-instance event relay when set.
	RabbitMQURL    string
	EventsExchange string

	SessionQueueSize      int
	SessionIdleTimeout    time.Duration
	SessionSweepSchedule  string
	RegistryStatsSchedule string

	SeedCatalog bool
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
