package config

import (
	"sync"

	"github.com/robgonnella/backupcheck/internal/exception"
	"github.com/robgonnella/backupcheck/internal/logger"
)

// ConfigService validates and caches the configuration stored in a Repo
type ConfigService struct {
	repo    Repo
	current *Config
	mux     sync.RWMutex
	log     logger.Logger
}

// NewConfigService returns a new instance of ConfigService
func NewConfigService(repo Repo) *ConfigService {
	return &ConfigService{
		repo: repo,
		log:  logger.New().Component("config"),
	}
}

// Get returns a copy of the current configuration, loading it on first use
func (s *ConfigService) Get() (*Config, error) {
	s.mux.RLock()
	current := s.current
	s.mux.RUnlock()

	if current != nil {
		return copyConfig(current), nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.current != nil {
		return copyConfig(s.current), nil
	}

	conf, err := s.repo.Load()

	if err != nil {
		return nil, exception.NewConfigurationError("", "failed to load configuration", err)
	}

	if err := Validate(conf); err != nil {
		return nil, err
	}

	s.current = conf

	return copyConfig(conf), nil
}

// Update trims and drops empty subnet and directory entries, fills unset
// fields with defaults, validates and stores conf
func (s *ConfigService) Update(conf *Config) (*Config, error) {
	if conf == nil {
		return nil, exception.NewConfigurationError("", "configuration is required", nil)
	}

	if conf.SubnetsToScan == nil {
		return nil, exception.NewConfigurationError("subnets_to_scan", "must be a list", nil)
	}

	if conf.DirectoriesToScan == nil {
		return nil, exception.NewConfigurationError("directories_to_scan", "must be a list", nil)
	}

	updated, err := WithDefaults(Clean(conf))

	if err != nil {
		return nil, exception.NewConfigurationError("", "", err)
	}

	if err := Validate(updated); err != nil {
		return nil, err
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if err := s.repo.Save(updated); err != nil {
		return nil, err
	}

	s.current = updated

	s.log.Info().
		Strs("subnets", updated.SubnetsToScan).
		Strs("directories", updated.DirectoriesToScan).
		Msg("configuration updated")

	return copyConfig(updated), nil
}
