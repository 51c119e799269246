package fetchproducts

import (
	"time"

	"storefront-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// DefaultLimit applies when a job carries no limit.
	DefaultLimit int
}

func LoadConfig(wcfg config.WorkerConfig, sf config.StorefrontConfig) *Config {
	return &Config{
		Timeout:      config.GetDuration(wcfg.Timeout),
		DefaultLimit: sf.FeaturedLimit,
	}
}
