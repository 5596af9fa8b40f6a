package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for both the API server and the worker.
type Config struct {
	ProjectID string `envconfig:"PROJECT_ID" required:"true"`
	Addr      string `envconfig:"ADDR" default:":8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	// SyncWorkers caps concurrent per-account syncs inside a batch
	// recalculation.
	SyncWorkers int `envconfig:"SYNC_WORKERS" default:"4"`

	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"5"`
	RecalcCron        string `envconfig:"RECALC_CRON" default:"0 3 * * *"`
}

// New reads configuration from environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
