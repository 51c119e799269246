package selecttemplate

import (
	"time"

	"storefront-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// DefaultFallbackID is used when a job carries no fallbackTemplateId.
	DefaultFallbackID string
}

func LoadConfig(wcfg config.WorkerConfig, sf config.StorefrontConfig) *Config {
	return &Config{
		Timeout:           config.GetDuration(wcfg.Timeout),
		DefaultFallbackID: sf.DefaultTemplateID,
	}
}
