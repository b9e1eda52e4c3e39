package config

//go:generate mockgen -destination=../mock/config/mock_config.go -package=mock_config . Repo

// DiscoveryConfig represents tuning for network discovery
type DiscoveryConfig struct {
	Workers             int `json:"workers" validate:"min=1,max=256"`
	ProbeTimeoutSeconds int `json:"probe_timeout_seconds" validate:"min=1,max=3600"`
}

// FreshnessConfig represents backup freshness classification settings
type FreshnessConfig struct {
	MaxAgeDays int `json:"max_age_days" validate:"min=1,max=36500"`
}

// DNSConfig represents the nameserver used for reverse lookups. An empty
// server means the system resolver.
type DNSConfig struct {
	Server         string `json:"server,omitempty" validate:"omitempty,hostname_port|ip"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"min=1,max=60"`
}

// Config represents the data structure of our user provided json configuration
type Config struct {
	SubnetsToScan     []string        `json:"subnets_to_scan" validate:"dive,cidr"`
	DirectoriesToScan []string        `json:"directories_to_scan" validate:"dive,required"`
	Discovery         DiscoveryConfig `json:"discovery"`
	Freshness         FreshnessConfig `json:"freshness"`
	DNS               DNSConfig       `json:"dns"`
}

// Repo interface representing access to the stored config
type Repo interface {
	Load() (*Config, error)
	Save(conf *Config) error
}
