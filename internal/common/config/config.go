// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	Camunda    CamundaConfig           `mapstructure:"camunda"`
	Database   DatabaseConfig          `mapstructure:"database"`
	Storefront StorefrontConfig        `mapstructure:"storefront"`
	Alerts     AlertsConfig            `mapstructure:"alerts"`
	Server     ServerConfig            `mapstructure:"server"`
	Workers    map[string]WorkerConfig `mapstructure:"workers"`
	Logging    LoggingConfig           `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// CamundaConfig is optional. Workers only start when BrokerAddress is set.
type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	ProductIndex string   `mapstructure:"product_index"`
}

// GetURL returns the first configured address.
func (e ElasticsearchConfig) GetURL() string {
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Storefront ---

// StorefrontConfig drives template selection and page composition.
type StorefrontConfig struct {
	DefaultTemplateID string `mapstructure:"default_template_id"`
	// ThemeTemplates maps a store theme to a template id. Merged over the built-in table.
	ThemeTemplates map[string]string `mapstructure:"theme_templates"`
	// ProductSource is "elasticsearch" or "postgres".
	ProductSource string `mapstructure:"product_source"`
	FeaturedLimit int    `mapstructure:"featured_limit"`
	CacheTTL      int    `mapstructure:"cache_ttl"` // seconds, 0 disables caching
	ManifestPath  string `mapstructure:"manifest_path"`
	FetchTimeout  int    `mapstructure:"fetch_timeout"` // milliseconds
}

// AlertsConfig configures configuration-error notifications.
type AlertsConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	Region           string   `mapstructure:"region"`
	TopicARN         string   `mapstructure:"topic_arn"`
	FromEmail        string   `mapstructure:"from_email"`
	EditorRecipients []string `mapstructure:"editor_recipients"`
}

// ServerConfig is the HTTP listener for health, metrics and page previews.
type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
