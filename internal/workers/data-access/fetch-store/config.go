package fetchstore

import (
	"time"

	"storefront-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	return &Config{Timeout: config.GetDuration(wcfg.Timeout)}
}
