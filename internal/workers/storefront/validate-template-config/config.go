package validatetemplateconfig

import (
	"time"

	"storefront-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// FailOnInvalid throws TEMPLATE_CONFIG_INVALID instead of completing with valid=false.
	FailOnInvalid bool
	// NotifyOnInvalid sends a configuration alert for every rejected layout.
	NotifyOnInvalid bool
}

func LoadConfig(wcfg config.WorkerConfig, alerts config.AlertsConfig) *Config {
	return &Config{
		Timeout:         config.GetDuration(wcfg.Timeout),
		NotifyOnInvalid: alerts.Enabled,
	}
}
